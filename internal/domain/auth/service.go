package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusroom/campusroom-api/internal/domain/user"
	"github.com/campusroom/campusroom-api/internal/pkg/jwt"
	"github.com/campusroom/campusroom-api/internal/pkg/rolegate"
)

// Service handles authentication business logic
type Service struct {
	users      user.Repository
	jwtService *jwt.Service
}

// NewService creates auth service
func NewService(users user.Repository, jwtService *jwt.Service) *Service {
	return &Service{users: users, jwtService: jwtService}
}

// Register creates an account and issues an access token
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if !user.IsValidRole(req.Role) {
		return nil, ErrRoleNotAllowed
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role, _ := rolegate.ParseRole(req.Role)
	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		RollNumber:   strings.TrimSpace(req.RollNumber),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role), u.Name, u.RollNumber)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("user registered")
	return &AuthResponse{AccessToken: token, User: u}, nil
}

// Login verifies credentials and issues an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role), u.Name, u.RollNumber)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{AccessToken: token, User: u}, nil
}

// Me returns the account behind an authenticated user id
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}
