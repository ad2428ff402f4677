package credentials

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, "transferdesk:test:token", time.Hour)

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return store, mr
}

func TestRedisStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "missing key must load as empty token")

	require.NoError(t, store.Save(ctx, "abc"))

	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear(ctx))

	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clear on an empty store is idempotent
	require.NoError(t, store.Clear(ctx))
}

func TestRedisStore_SaveSetsTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, "abc"))
	assert.Greater(t, mr.TTL("transferdesk:test:token"), time.Duration(0))
}

func TestRedisStore_ExpiredTokenLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, "abc"))
	mr.FastForward(2 * time.Hour)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
