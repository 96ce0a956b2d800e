package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusroom/campusroom-api/internal/pkg/rolegate"
)

// User represents a student, class representative or admin account
// (matches the users table)
type User struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	Email        string        `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Name         string        `db:"name" json:"name"`
	RollNumber   string        `db:"roll_number" json:"roll_number"`
	Role         rolegate.Role `db:"role" json:"role"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == rolegate.RoleAdmin
}

// Actor returns the rolegate identity for this user
func (u *User) Actor() rolegate.Actor {
	return rolegate.Actor{
		ID:         u.ID,
		Name:       u.Name,
		RollNumber: u.RollNumber,
		Role:       u.Role,
	}
}

// ValidRoles returns list of valid roles for registration.
// Admin accounts are provisioned out of band, never self-registered.
func ValidRoles() []rolegate.Role {
	return []rolegate.Role{rolegate.RoleStudent, rolegate.RoleClassRepresentative}
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}
