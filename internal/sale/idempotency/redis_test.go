package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-retail-service/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(&cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestClaimLifecycle(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	id, claimed, err := store.Claim(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Empty(t, id)

	// second caller sees the sale still running
	id, claimed, err = store.Claim(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Empty(t, id)

	require.NoError(t, store.Complete(ctx, "k1", "sale-42"))

	id, claimed, err = store.Claim(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, "sale-42", id)

	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"k1"))
}

func TestReleaseFreesPendingKey(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, claimed, err := store.Claim(ctx, "k2")
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, store.Release(ctx, "k2"))

	_, claimed, err = store.Claim(ctx, "k2")
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestReleaseKeepsCompletedKey(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Complete(ctx, "k3", "sale-7"))
	require.NoError(t, store.Release(ctx, "k3"))

	val, err := mr.Get(keyPrefix + "k3")
	require.NoError(t, err)
	assert.Equal(t, "sale-7", val)
}

func TestExpiredKeyCanBeClaimedAgain(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Complete(ctx, "k4", "sale-1"))
	mr.FastForward(2 * time.Hour)

	_, claimed, err := store.Claim(ctx, "k4")
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestPendingClaimExpiresQuickly(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	_, claimed, err := store.Claim(ctx, "k5")
	require.NoError(t, err)
	require.True(t, claimed)
	assert.Equal(t, pendingTTL, mr.TTL(keyPrefix+"k5"))

	// owner crashed without Complete or Release
	mr.FastForward(pendingTTL + time.Second)

	_, claimed, err = store.Claim(ctx, "k5")
	require.NoError(t, err)
	assert.True(t, claimed)

	require.NoError(t, store.Complete(ctx, "k5", "sale-9"))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"k5"))
}
