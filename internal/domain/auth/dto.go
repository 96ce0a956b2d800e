package auth

import "github.com/campusroom/campusroom-api/internal/domain/user"

// RegisterRequest represents a new account registration.
// Admin accounts are provisioned out of band and cannot be self-registered.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	RollNumber string `json:"roll_number" validate:"required,min=2,max=30"`
	Role       string `json:"role" validate:"required,role"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the account it belongs to
type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	User        *user.User `json:"user"`
}
