package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helphub-app/helphub-server/internal/domain/port/core"
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
)

const profileKeyPrefix = "helphub:profile:"

// RedisProfileCache caches dashboard profile projections in Redis so the
// profile endpoint doesn't hit the database on every request
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger core.Logger
}

// NewRedisProfileCache creates a Redis-backed profile cache and verifies
// connectivity before returning
func NewRedisProfileCache(ctx context.Context, addr, password string, db int, ttl time.Duration, logger core.Logger) (*RedisProfileCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = 60 * time.Second
	}

	return &RedisProfileCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get returns the cached profile for an email, if present
func (c *RedisProfileCache) Get(ctx context.Context, email string) (*usecase.Profile, bool) {
	data, err := c.client.Get(ctx, profileKeyPrefix+email).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Profile cache read failed", map[string]any{
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var profile usecase.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		c.logger.Warn("Discarding corrupt cached profile", map[string]any{
			"error": err.Error(),
		})
		c.client.Del(ctx, profileKeyPrefix+email)
		return nil, false
	}
	return &profile, true
}

// Set stores a profile for an email
func (c *RedisProfileCache) Set(ctx context.Context, email string, profile *usecase.Profile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, profileKeyPrefix+email, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Profile cache write failed", map[string]any{
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached profile after a balance change
func (c *RedisProfileCache) Invalidate(ctx context.Context, email string) {
	if err := c.client.Del(ctx, profileKeyPrefix+email).Err(); err != nil {
		c.logger.Warn("Profile cache invalidation failed", map[string]any{
			"error": err.Error(),
		})
	}
}

// Close releases the underlying Redis connection
func (c *RedisProfileCache) Close() error {
	return c.client.Close()
}
