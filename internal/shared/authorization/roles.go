package authorization

import "fmt"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// HomeRoute returns the landing route for an authenticated role.
func (r UserRole) HomeRoute() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/app"
}

// ParseUserRole parses a role string from the backend. The role set is
// closed; anything else is rejected so verification fails closed rather
// than coercing an unknown role.
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
