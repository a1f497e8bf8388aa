// Package cache defines the key/value cache interface used for derived
// todo statistics, plus an in-memory implementation for tests and local
// development. The production implementation backed by Redis lives in
// internal/platform/redis.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTLs and
// explicit deletion. Values are opaque; callers handle serialization.
//
// The consistency contract for stats entries is invalidate-on-write:
// every todo mutation deletes the owner's stat keys, so the TTL is only
// a backstop, never the mechanism that keeps reads fresh.
type Cache interface {
	// Get retrieves the value stored under key. The second return value
	// reports whether the key was present (a missing key is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Deleting a missing key is a no-op.
	Delete(ctx context.Context, keys ...string) error
}
