package rolegate

import "github.com/google/uuid"

// Role is a coarse capability level carried by an authenticated user.
type Role string

const (
	RoleStudent             Role = "student"
	RoleClassRepresentative Role = "class_representative"
	RoleAdmin               Role = "admin"
)

// ParseRole maps a raw claim value to a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleClassRepresentative, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID         uuid.UUID
	Name       string
	RollNumber string
	Role       Role
}

// Gate answers role-membership questions about an actor. Domain services
// consult it as an opaque predicate instead of comparing role strings inline.
type Gate interface {
	HasAnyRole(actor Actor, roles ...Role) bool
}

// ClaimsGate grants roles straight from the actor's authenticated role claim.
type ClaimsGate struct{}

func (ClaimsGate) HasAnyRole(actor Actor, roles ...Role) bool {
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}
