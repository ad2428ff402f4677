package api

import (
	"transferdesk/internal/shared/authorization"
)

// User is the identity record returned by the dashboard backend.
type User struct {
	ID        uint                   `json:"id"`
	FirstName string                 `json:"first_name"`
	LastName  string                 `json:"last_name"`
	Email     string                 `json:"email"`
	Role      authorization.UserRole `json:"role"`
	CollegeID *uint                  `json:"college_id"`
	College   string                 `json:"college,omitempty"`
}

// FullName returns the display name for the identity.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the success payload of POST /auth/login.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type userResponse struct {
	User User `json:"user"`
}
