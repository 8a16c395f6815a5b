package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blog:render:"

type RedisRenderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRenderCache(rdb *redis.Client, ttl time.Duration) *RedisRenderCache {
	return &RedisRenderCache{rdb: rdb, ttl: ttl}
}

func (c *RedisRenderCache) Get(ctx context.Context, slug string) (string, bool, error) {
	html, err := c.rdb.Get(ctx, keyPrefix+slug).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}

func (c *RedisRenderCache) Set(ctx context.Context, slug string, html string) error {
	return c.rdb.Set(ctx, keyPrefix+slug, html, c.ttl).Err()
}

func (c *RedisRenderCache) Delete(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = keyPrefix + slug
	}
	return c.rdb.Del(ctx, keys...).Err()
}
