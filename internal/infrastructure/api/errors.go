package api

import (
	"encoding/json"
	"fmt"
)

// Error is a non-2xx response from the dashboard backend. The raw body is
// kept so a rejected login reaches the caller with the backend payload
// unchanged.
type Error struct {
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api error: status=%d", e.StatusCode)
}

// Message extracts the backend's message field when the body is JSON.
func (e *Error) Message() string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// Payload decodes the backend body into a generic map, e.g. to read
// per-field validation errors from a 422.
func (e *Error) Payload() map[string]any {
	var payload map[string]any
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return nil
	}
	return payload
}

// IsUnauthorized reports whether the backend rejected the credential.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
