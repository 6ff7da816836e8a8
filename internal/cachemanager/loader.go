package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// Loader fills a cache on miss. Every hit restarts the entry's ttl, so
// values in steady use never expire. Failed loads are not stored.
type Loader[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	key   func(I) K
	load  func(ctx context.Context, in I) (V, error)
	ttl   time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewLoader builds a Loader. A nil cache makes every call load.
func NewLoader[K ~string, V any, I any](
	cache CacheManager[K, V],
	key func(I) K,
	load func(ctx context.Context, in I) (V, error),
	ttl time.Duration,
) *Loader[K, V, I] {
	return &Loader[K, V, I]{cache: cache, key: key, load: load, ttl: ttl}
}

// Load returns the cached value for in, loading it on a miss.
func (l *Loader[K, V, I]) Load(ctx context.Context, in I) (V, error) {
	if l.cache == nil {
		l.misses.Add(1)
		return l.load(ctx, in)
	}
	k := l.key(in)
	if v, ok := l.cache.Touch(ctx, k, l.ttl); ok {
		l.hits.Add(1)
		return v, nil
	}
	l.misses.Add(1)
	v, err := l.load(ctx, in)
	if err != nil {
		return v, err
	}
	l.cache.Set(ctx, k, v, l.ttl)
	return v, nil
}

// Stats reports lookups served from the cache and lookups that loaded.
func (l *Loader[K, V, I]) Stats() (hits, misses int64) {
	return l.hits.Load(), l.misses.Load()
}
