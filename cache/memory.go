package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// InMemoryCache is a thread-safe, size-bounded LRU cache with TTL support.
type InMemoryCache struct {
	lru *expirable.LRU[string, string]
}

// NewInMemoryCache creates an in-memory cache holding at most size entries.
// A size of 0 or less means unbounded; a ttl of 0 or less means entries
// never expire.
func NewInMemoryCache(size int, ttl time.Duration) *InMemoryCache {
	if size < 0 {
		size = 0
	}
	if ttl < 0 {
		ttl = 0
	}
	return &InMemoryCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Get retrieves a value from the cache.
// Returns the value and true if found and not expired, empty string and false otherwise.
func (c *InMemoryCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores a value in the cache, evicting the least recently used entry
// when full.
func (c *InMemoryCache) Set(key string, value string) error {
	c.lru.Add(key, value)
	return nil
}

// Len returns the number of entries in the cache.
func (c *InMemoryCache) Len() int {
	return c.lru.Len()
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.lru.Purge()
}

// Keys returns the cached keys from oldest to newest.
func (c *InMemoryCache) Keys() []string {
	return c.lru.Keys()
}

// Verify InMemoryCache implements ResultCache
var _ ResultCache = (*InMemoryCache)(nil)
