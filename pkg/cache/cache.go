// Package cache stores computed layouts and rendered artifacts.
//
// A Cache is a byte store with per-entry TTLs. Keys are produced by a
// Keyer from content hashes and the options that influence the result, so
// identical inputs map to identical keys across the CLI and the server.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: Redis, for servers sharing a cache
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// [Open] selects a backend from a URL-like string.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// TTLLayout is how long computed layouts are kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A missing or expired entry is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
