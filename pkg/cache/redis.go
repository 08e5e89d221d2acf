package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pochun/chipscan/pkg/config"
)

// Redis is a cache backed by a Redis server. Useful when several operators
// share one deployment and should share the memoized upstream responses.
// ⭐ SSOT: Redis 連線只在這裡管理
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis connects to Redis using the application config.
func NewRedis(cfg *config.Config) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test connection
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Redis{rdb: rdb, prefix: "chipscan"}, nil
}

// Get returns the cached body for key. Key-not-found is not an error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.rdb.Get(ctx, r.fullKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set stores body under key for ttl. Failures are swallowed: the cache is
// an optimization, not a source of truth.
func (r *Redis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	_ = r.rdb.Set(ctx, r.fullKey(key), body, ttl).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

func (r *Redis) fullKey(key string) string {
	return fmt.Sprintf("%s:cache:%s", r.prefix, key)
}

// FromConfig returns the configured cache backend: Redis when enabled,
// otherwise in-process memory.
func FromConfig(cfg *config.Config) (Cache, error) {
	if !cfg.Redis.Enabled {
		return NewMemory(), nil
	}
	return NewRedis(cfg)
}
