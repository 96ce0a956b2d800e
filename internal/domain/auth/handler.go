package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusroom/campusroom-api/internal/domain/user"
	"github.com/campusroom/campusroom-api/internal/middleware"
	"github.com/campusroom/campusroom-api/internal/pkg/response"
	"github.com/campusroom/campusroom-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register creates a new account
// POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			response.Conflict(w, "EMAIL_TAKEN", "Email already registered")
		case errors.Is(err, user.ErrRollNumberTaken):
			response.Conflict(w, "ROLL_NUMBER_TAKEN", "Roll number already registered")
		case errors.Is(err, ErrRoleNotAllowed):
			response.ValidationError(w, map[string]string{"role": "Role not allowed for registration"})
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, resp)
}

// Login authenticates and issues a token
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Me returns the current account
// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.NotFound(w, "User not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, u)
}

// Routes returns auth routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
	})

	return r
}
