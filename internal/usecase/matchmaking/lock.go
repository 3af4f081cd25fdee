package matchmaking

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunLock serializes matching passes. Two concurrent runs would read the same
// unmatched snapshot and could allocate the same profile twice, so whoever
// fails to take the lock must not run.
type RunLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

const runLockKey = "matchmaking:run_lock"

type redisRunLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRunLock returns a RunLock backed by SET NX with a TTL, so a crashed
// run cannot wedge matching forever.
func NewRedisRunLock(client *redis.Client, ttl time.Duration) RunLock {
	return &redisRunLock{client: client, ttl: ttl}
}

func (l *redisRunLock) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, runLockKey, "1", l.ttl).Result()
}

func (l *redisRunLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, runLockKey).Err()
}
