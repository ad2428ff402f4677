package credentials

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) (*Vault, Store, Store) {
	t.Helper()

	durable := NewFileStore(filepath.Join(t.TempDir(), "durable", "token"))
	ephemeral := NewFileStore(filepath.Join(t.TempDir(), "ephemeral", "token"))
	return NewVault(durable, ephemeral, nil), durable, ephemeral
}

func TestVault_SaveDurable_IsExclusive(t *testing.T) {
	ctx := context.Background()
	vault, durable, ephemeral := newTestVault(t)

	require.NoError(t, ephemeral.Save(ctx, "stale"))
	require.NoError(t, vault.Save(ctx, ScopeDurable, "t1"))

	stored, err := durable.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", stored)

	stored, err = ephemeral.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "ephemeral scope must be cleared by a durable save")
}

func TestVault_SaveEphemeral_IsExclusive(t *testing.T) {
	ctx := context.Background()
	vault, durable, ephemeral := newTestVault(t)

	require.NoError(t, durable.Save(ctx, "stale"))
	require.NoError(t, vault.Save(ctx, ScopeEphemeral, "t2"))

	stored, err := ephemeral.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t2", stored)

	stored, err = durable.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "durable scope must be cleared by an ephemeral save")
}

func TestVault_Load_PrefersDurable(t *testing.T) {
	ctx := context.Background()
	vault, durable, ephemeral := newTestVault(t)

	require.NoError(t, durable.Save(ctx, "from-durable"))
	require.NoError(t, ephemeral.Save(ctx, "from-ephemeral"))

	token, scope, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-durable", token)
	assert.Equal(t, ScopeDurable, scope)
}

func TestVault_Load_FallsBackToEphemeral(t *testing.T) {
	ctx := context.Background()
	vault, _, ephemeral := newTestVault(t)

	require.NoError(t, ephemeral.Save(ctx, "xyz"))

	token, scope, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)
	assert.Equal(t, ScopeEphemeral, scope)
}

func TestVault_Load_Empty(t *testing.T) {
	ctx := context.Background()
	vault, _, _ := newTestVault(t)

	token, _, err := vault.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestVault_Clear_EmptiesBothScopes(t *testing.T) {
	ctx := context.Background()
	vault, durable, ephemeral := newTestVault(t)

	require.NoError(t, durable.Save(ctx, "a"))
	require.NoError(t, ephemeral.Save(ctx, "b"))

	require.NoError(t, vault.Clear(ctx))

	token, err := durable.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = ephemeral.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an already empty vault is not an error
	require.NoError(t, vault.Clear(ctx))
}
