package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by RedisCache.
const DefaultKeyPrefix = "tlaudit:"

// RedisCache is a Redis-backed extraction cache, shared between scanners.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL        string        // Redis connection URL (e.g., "redis://localhost:6379")
	TTL        time.Duration // Entry lifetime (0 = no expiration)
	KeyPrefix  string        // Prefix for all keys (default: "tlaudit:")
	Retry      *RetryConfig  // Connection retries (default: DefaultRetryConfig)
	ClientName string        // Reported to the server; keeps the URL's value when empty
}

// NewRedisCache creates a new Redis cache and verifies the connection,
// retrying transient network failures.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	retry := DefaultRetryConfig()
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}

	if cfg.ClientName != "" {
		opts.ClientName = cfg.ClientName
	}
	client := redis.NewClient(opts)

	_, err = WithRetry(context.Background(), retry, func() (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Ping(ctx).Result()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if ttl < 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value from Redis. Connection errors count as a miss.
func (c *RedisCache) Get(key string) (string, bool) {
	val, err := c.client.Get(context.Background(), c.keyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value in Redis.
func (c *RedisCache) Set(key string, value string) error {
	return c.client.Set(context.Background(), c.keyPrefix+key, value, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	return c.client.Ping(context.Background()).Err()
}

// Verify RedisCache implements ResultCache
var _ ResultCache = (*RedisCache)(nil)
