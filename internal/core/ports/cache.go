// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository defines the interface for cache operations
type CacheRepository interface {
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// GetOrSet reads key into dest, calling fetch and storing its result on a miss
	GetOrSet(ctx context.Context, key string, dest interface{},
		fetch func() (interface{}, error), ttl time.Duration) error

	// Incr bumps a counter and returns its new value
	Incr(ctx context.Context, key string) (int64, error)
	// Counter reads a counter; a missing counter is zero
	Counter(ctx context.Context, key string) (int64, error)

	Ping(ctx context.Context) error
}
