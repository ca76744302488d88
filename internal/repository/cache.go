// Package repository defines data access interfaces for the film API.
package repository

import (
	"context"
	"time"
)

// Cache defines the interface for caching entity reads.
// Implemented by Redis for shared deployments and by an in-memory cache for
// embedded single-node deployments. Cache failures must degrade to direct
// database reads, never to request failures.
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value doesn't expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// DeleteMulti removes multiple values.
	DeleteMulti(ctx context.Context, keys ...string) error
}
