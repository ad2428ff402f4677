package session

import (
	"transferdesk/internal/infrastructure/api"
)

// State is a snapshot of the session. User is non-nil only when the
// token it came with was positively verified against the backend; a
// stored token alone is never treated as authenticated.
type State struct {
	// Token is the opaque bearer credential, empty when anonymous.
	Token string
	// User is the verified identity, nil when anonymous.
	User *api.User
	// Loading is true from process start until the first rehydration
	// attempt completes, then permanently false.
	Loading bool
}

// Authenticated reports whether the session holds a verified identity.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}
