// Package credentials persists the bearer token between runs. A token
// lives in exactly one of two scopes: durable storage that survives
// restarts, or ephemeral storage that ends with the login session.
package credentials

import (
	"context"
	"fmt"

	sharedConfig "transferdesk/internal/shared/config"
)

// Scope selects where a token is persisted.
type Scope int

const (
	// ScopeDurable survives process and machine restarts ("remember me").
	ScopeDurable Scope = iota
	// ScopeEphemeral is cleared when the login session ends.
	ScopeEphemeral
)

func (s Scope) String() string {
	if s == ScopeDurable {
		return "durable"
	}
	return "ephemeral"
}

// Store is a single-slot token store. Load returns an empty string when
// no token is stored.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// NewDurableStore builds the configured durable backend.
func NewDurableStore(cfg *sharedConfig.StorageConfig) (Store, error) {
	switch cfg.DurableBackend {
	case "", "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	case "redis":
		return NewRedisStore(&cfg.Redis), nil
	default:
		return nil, fmt.Errorf("unknown durable backend %q", cfg.DurableBackend)
	}
}
