// Package core defines the ports shared by the studio services and their adapters.
package core

import (
	"context"
	"time"
)

// CacheRepository defines the interface for the shared second-tier cache.
// The core defines the interface and the data layer provides implementations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// InvalidationBus broadcasts resource invalidations between replicas.
type InvalidationBus interface {
	// PublishInvalidation announces that the named resource collection changed.
	PublishInvalidation(ctx context.Context, resource string) error

	// SubscribeInvalidations calls fn for every announced resource until ctx is done.
	SubscribeInvalidations(ctx context.Context, fn func(resource string)) error
}

// CollectionCacheKey is the second-tier key holding the encoded collection for a resource.
func CollectionCacheKey(resource string) string {
	return "studio:collection:" + resource
}

// InvalidationChannel is the pub/sub channel carrying resource invalidations.
const InvalidationChannel = "studio:invalidations"
