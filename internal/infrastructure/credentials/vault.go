package credentials

import (
	"context"
	"errors"
	"fmt"

	"transferdesk/internal/shared/logger"
)

// Vault coordinates the two scopes behind one save/load/clear surface.
// Scope selection happens once, at save time; loading always prefers the
// durable scope; clearing always empties both.
type Vault struct {
	durable   Store
	ephemeral Store
	logger    logger.Interface
}

func NewVault(durable, ephemeral Store, log logger.Interface) *Vault {
	if log == nil {
		log = logger.NewLogger().Named("credentials")
	}
	return &Vault{
		durable:   durable,
		ephemeral: ephemeral,
		logger:    log,
	}
}

// Save writes the token to the chosen scope and removes it from the
// other, so the token is never present in both at once.
func (v *Vault) Save(ctx context.Context, scope Scope, token string) error {
	target, other := v.durable, v.ephemeral
	if scope == ScopeEphemeral {
		target, other = v.ephemeral, v.durable
	}

	if err := target.Save(ctx, token); err != nil {
		return fmt.Errorf("save token to %s store: %w", scope, err)
	}
	if err := other.Clear(ctx); err != nil {
		// The token is already saved; scope exclusivity is restored by
		// the next clear, so log rather than fail the login.
		v.logger.Warnw("failed to clear opposite credential scope", "error", err)
	}
	return nil
}

// Load returns a previously stored token, checking the durable scope
// first, and the scope it was found in. An empty token means anonymous.
func (v *Vault) Load(ctx context.Context) (string, Scope, error) {
	token, err := v.durable.Load(ctx)
	if err != nil {
		return "", ScopeDurable, fmt.Errorf("load durable token: %w", err)
	}
	if token != "" {
		return token, ScopeDurable, nil
	}

	token, err = v.ephemeral.Load(ctx)
	if err != nil {
		return "", ScopeEphemeral, fmt.Errorf("load ephemeral token: %w", err)
	}
	return token, ScopeEphemeral, nil
}

// Clear empties both scopes. Both are attempted regardless of errors.
func (v *Vault) Clear(ctx context.Context) error {
	return errors.Join(v.durable.Clear(ctx), v.ephemeral.Clear(ctx))
}
