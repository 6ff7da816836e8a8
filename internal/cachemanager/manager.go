// Package cachemanager provides small typed caches shared across editing sessions.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed key/value cache with per-entry expiry.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	// Touch is Get that also restarts the entry's ttl on a hit.
	Touch(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
	Len() int
}
