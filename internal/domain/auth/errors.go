package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotAllowed     = errors.New("role not allowed for registration")
)
