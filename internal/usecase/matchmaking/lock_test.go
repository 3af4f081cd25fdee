package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisRunLock_MutualExclusion(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	first := NewRedisRunLock(client, time.Minute)
	second := NewRedisRunLock(client, time.Minute)

	acquired, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, acquired, "second acquirer must be rejected while the lock is held")

	require.NoError(t, first.Release(ctx))

	acquired, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired, "lock must be free again after release")
}

func TestRedisRunLock_ExpiresAfterTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	lock := NewRedisRunLock(client, time.Second)

	acquired, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	// a crashed run never releases; the TTL must free the lock
	mr.FastForward(2 * time.Second)

	acquired, err = lock.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
}
