package domain

import "strings"

// UserRole is attached to the authenticated session by the backend token.
type UserRole string

const (
	RoleOwner  UserRole = "OWNER"
	RoleVet    UserRole = "VET"
	RoleSeller UserRole = "SELLER"
	RoleAdmin  UserRole = "ADMIN"
)

var Roles = []UserRole{RoleOwner, RoleVet, RoleSeller, RoleAdmin}

// ParseRole upper-cases s. Unknown roles come back as-is and behave like an
// owner wherever a role-specific branch is missing.
func ParseRole(s string) UserRole {
	return UserRole(strings.ToUpper(strings.TrimSpace(s)))
}

// IsKnown reports whether r is one of Roles.
func (r UserRole) IsKnown() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is the principal extracted from a verified access token.
type User struct {
	ID   string   `json:"id"`
	Role UserRole `json:"role"`
}
