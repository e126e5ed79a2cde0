// Package cache provides stores for serialized extraction results.
//
// Entries are keyed by a hash of the scanned document plus the scan inputs,
// so a hit always returns exactly what a fresh extraction would produce.
package cache

import (
	"fmt"
	"time"
)

// ResultCache is the interface for extraction caching.
type ResultCache interface {
	// Get retrieves a cached value. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a value in the cache.
	Set(key string, value string) error
}

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string        // none, memory or redis
	Size       int           // Maximum entries for the memory backend (0 = unbounded)
	TTL        time.Duration // Entry lifetime (0 = no expiration)
	RedisURL   string        // Redis connection URL (e.g., "redis://localhost:6379/0")
	KeyPrefix  string        // Prefix for Redis keys (default: "tlaudit:")
	ClientName string        // Redis CLIENT SETNAME value
}

// New builds the configured backend. BackendNone (or "") returns a nil
// cache, which callers treat as caching disabled.
func New(cfg Config) (ResultCache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewInMemoryCache(cfg.Size, cfg.TTL), nil
	case BackendRedis:
		c, err := NewRedisCache(RedisConfig{
			URL:        cfg.RedisURL,
			TTL:        cfg.TTL,
			KeyPrefix:  cfg.KeyPrefix,
			ClientName: cfg.ClientName,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
