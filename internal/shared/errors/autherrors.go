package errors

import (
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeSessionInvalid     ErrorType = "session_invalid"
	ErrorTypeRoleUnknown        ErrorType = "role_unknown"
)

// AuthError represents authentication-specific errors.
//
// Only invalid-credentials errors are meant for display; session-invalid
// errors are recovered internally by forcing the session to anonymous.
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged.
	// Invalid credentials are expected and don't need error-level logging.
	ShouldLog bool
	// Surfaced indicates whether the error is meant to reach the user.
	Surfaced bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message does not reveal whether the email or password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
		Surfaced:  true,
	}
}

// NewSessionInvalidError creates an error for a stored token the backend
// rejected during rehydration. It is never surfaced; it only triggers
// silent local cleanup.
func NewSessionInvalidError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionInvalid,
			Message: "Session is no longer valid",
			Code:    http.StatusUnauthorized,
			Details: detail,
		},
		ShouldLog: true,
		Surfaced:  false,
	}
}

// NewRoleUnknownError creates an error for an identity whose role is not
// part of the closed role set. Treated like any other verification
// failure: fail closed.
func NewRoleUnknownError(role string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeRoleUnknown,
			Message: "Unknown role in identity response",
			Code:    http.StatusForbidden,
			Details: role,
		},
		ShouldLog: true,
		Surfaced:  false,
	}
}
