package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunLock serializes the daily reconciliation batch across process instances
// with a SET NX lease. The lock is advisory: losing the race means another
// instance is running the same batch, not that anything failed.
// Key format: reconcile:lock:<yyyy-mm-dd>
type RunLock struct {
	client *redis.Client
}

// NewRunLock creates a RunLock wrapping the given Redis client.
func NewRunLock(client *redis.Client) *RunLock {
	return &RunLock{client: client}
}

// TryAcquire claims the lock for key, expiring after ttl in case the holder
// dies without releasing.
func (l *RunLock) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(key), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire run lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock so a restarted instance can re-run the same day.
func (l *RunLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}

func (l *RunLock) key(key string) string {
	return fmt.Sprintf("reconcile:lock:%s", key)
}
