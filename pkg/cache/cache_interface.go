package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer. Implementations must be safe
// for concurrent use; a cache miss is not an error.
type Cache interface {
	// Get loads the value stored under key and unmarshals it into dest.
	// The first return value reports whether the key was found; on a miss
	// dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
