// Package sequence allocates order number sequence values from a Redis counter.
package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the counter backing order numbers.
const DefaultKey = "orders:order-number:sequence"

// RedisSequenceAllocator implements ports.SequenceAllocator with INCR.
// INCR is atomic on the server, so every caller in every process gets a
// distinct value. The key is never expired.
type RedisSequenceAllocator struct {
	client *redis.Client
	key    string
}

// NewRedisSequenceAllocator creates an allocator from a URL of the form
// redis://[:password@]host[:port][/database].
func NewRedisSequenceAllocator(redisURL, key string) (*RedisSequenceAllocator, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if key == "" {
		key = DefaultKey
	}
	return &RedisSequenceAllocator{client: redis.NewClient(opts), key: key}, nil
}

// Next increments the counter and returns the new value.
func (a *RedisSequenceAllocator) Next(ctx context.Context) (int64, error) {
	value, err := a.client.Incr(ctx, a.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", a.key, err)
	}
	return value, nil
}

// Ping checks if Redis is reachable.
func (a *RedisSequenceAllocator) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (a *RedisSequenceAllocator) Close() error {
	return a.client.Close()
}
