// Package cache stores rendered artifacts keyed by scene content.
//
// # Backends
//
//   - [NullCache]: stores nothing, used by --no-cache
//   - [FileCache]: one JSON file per entry under a directory, the CLI default
//   - [RedisCache]: shared cache for several preview servers
//   - [MongoCache]: shared cache with server-side expiry through a TTL index
//
// [Open] picks the backend from a URL:
//
//	c, err := cache.Open(ctx, "redis://localhost:6379/0", dir)
//	defer c.Close()
//
// Only rendered output is cached. Layout state is never persisted.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
