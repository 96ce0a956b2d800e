package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/campusroom/campusroom-api/internal/config"
	"github.com/campusroom/campusroom-api/internal/domain/auth"
	"github.com/campusroom/campusroom-api/internal/domain/booking"
	"github.com/campusroom/campusroom-api/internal/domain/issue"
	"github.com/campusroom/campusroom-api/internal/domain/room"
	"github.com/campusroom/campusroom-api/internal/domain/user"
	"github.com/campusroom/campusroom-api/internal/middleware"
	"github.com/campusroom/campusroom-api/internal/pkg/database"
	"github.com/campusroom/campusroom-api/internal/pkg/jwt"
	"github.com/campusroom/campusroom-api/internal/pkg/logger"
	pkgresponse "github.com/campusroom/campusroom-api/internal/pkg/response"
	"github.com/campusroom/campusroom-api/internal/pkg/rolegate"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting CampusRoom API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	gate := rolegate.ClaimsGate{}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	roomRepo := room.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	issueRepo := issue.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService)
	scheduleCache := booking.NewScheduleCache(redis, cfg.ScheduleCacheTTL)
	bookingService := booking.NewService(bookingRepo, roomRepo, gate, scheduleCache)
	issueService := issue.NewService(issueRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	roomHandler := room.NewHandler(roomRepo)
	bookingHandler := booking.NewHandler(bookingService)
	issueHandler := issue.NewHandler(issueService)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/rooms", roomHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware, adminMiddleware))
		r.Mount("/issues", issueHandler.Routes(authMiddleware, adminMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
