package cache

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ZaguanLabs/i18nmark"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultKeyPrefix is prepended to every Redis key.
const DefaultKeyPrefix = "i18nmark:"

// scanBatch is the COUNT hint used when enumerating keys.
const scanBatch = 100

// RedisCache is a Redis-backed cache, shared between runs and machines.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	timeout   time.Duration
	hits      atomic.Int64
	misses    atomic.Int64
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379/0")
	TTL       int    // TTL in seconds (0 = no expiration)
	KeyPrefix string // Prefix for all keys (default: "i18nmark:")
}

// NewRedisCache creates a new Redis cache with the given configuration.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, &i18nmark.CacheError{Message: "invalid redis URL", Cause: err}
	}

	c := NewRedisCacheFromClient(redis.NewClient(opts), cfg.TTL, cfg.KeyPrefix)
	if err := c.Ping(); err != nil {
		_ = c.client.Close()
		return nil, &i18nmark.CacheError{Message: "redis unreachable", Cause: err}
	}
	return c, nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		timeout:   5 * time.Second,
	}
}

func (c *RedisCache) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// Get retrieves a value from Redis. Connection errors are logged and
// reported as a miss.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := c.withTimeout()
	defer cancel()

	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Redis get failed")
		}
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return val, true
}

// Set stores a value in Redis.
func (c *RedisCache) Set(key string, value string) error {
	ctx, cancel := c.withTimeout()
	defer cancel()

	if err := c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err(); err != nil {
		return &i18nmark.CacheError{Message: "redis set failed", Cause: err}
	}
	return nil
}

// Entries returns every value stored under the key prefix, with the prefix removed.
func (c *RedisCache) Entries() (map[string]string, error) {
	ctx, cancel := c.withTimeout()
	defer cancel()

	result := make(map[string]string)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return nil, &i18nmark.CacheError{Message: "redis scan failed", Cause: err}
		}

		if len(keys) > 0 {
			values, err := c.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, &i18nmark.CacheError{Message: "redis mget failed", Cause: err}
			}
			for i, v := range values {
				if s, ok := v.(string); ok {
					result[strings.TrimPrefix(keys[i], c.keyPrefix)] = s
				}
			}
		}

		if next == 0 {
			break
		}
		cursor = next
	}
	return result, nil
}

// Stats returns lookup counters since creation.
func (c *RedisCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	ctx, cancel := c.withTimeout()
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// Verify RedisCache implements Enumerable
var _ Enumerable = (*RedisCache)(nil)
