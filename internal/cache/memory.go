package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory caching backed by go-cache
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache. A zero defaultTTL keeps entries
// until they are deleted.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) (string, bool) {
	if val, found := c.cache.Get(key); found {
		s, ok := val.(string)
		return s, ok
	}
	return "", false
}

// Set stores a value with the given TTL; zero uses the default TTL
func (c *MemoryCache) Set(key string, value string, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached entries, expired ones included until the
// next cleanup
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
