package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/inkwell/internal/log"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 30 * time.Minute

// InMemory is a CacheManager on top of go-cache. Entries stored with a zero
// ttl use the default expiration given to the constructor.
type InMemory[K ~string, V any] struct {
	name  string
	items *gocache.Cache
}

var _ CacheManager[string, int] = (*InMemory[string, int])(nil)

// NewInMemory creates an in-memory cache. name labels it in the debug log.
func NewInMemory[K ~string, V any](name string, defaultTTL, cleanupInterval time.Duration) *InMemory[K, V] {
	return &InMemory[K, V]{name: name, items: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *InMemory[K, V]) Get(_ context.Context, key K) (V, bool) {
	raw, found := c.items.Get(string(key))
	if !found {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "Cached value has the wrong type", "cache", c.name, "key", key)
		c.items.Delete(string(key))
	}
	return v, ok
}

func (c *InMemory[K, V]) Touch(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	v, ok := c.Get(ctx, key)
	if ok {
		c.Set(ctx, key, v, ttl)
	}
	return v, ok
}

func (c *InMemory[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.items.Set(string(key), value, ttl)
}

// Delete ignores keys that are not present.
func (c *InMemory[K, V]) Delete(_ context.Context, keys ...K) {
	for _, k := range keys {
		c.items.Delete(string(k))
	}
}

func (c *InMemory[K, V]) Flush(_ context.Context) {
	n := c.items.ItemCount()
	c.items.Flush()
	log.Debug(log.CatCache, "Cache flushed", "cache", c.name, "entries", n)
}

// Len counts entries, including expired ones not yet swept.
func (c *InMemory[K, V]) Len() int {
	return c.items.ItemCount()
}
