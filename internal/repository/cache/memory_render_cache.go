package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryRenderCache struct {
	cache *gocache.Cache
}

func NewMemoryRenderCache(ttl time.Duration) *MemoryRenderCache {
	return &MemoryRenderCache{cache: gocache.New(ttl, 10*time.Minute)}
}

func (c *MemoryRenderCache) Get(ctx context.Context, slug string) (string, bool, error) {
	x, found := c.cache.Get(slug)
	if !found {
		return "", false, nil
	}
	return x.(string), true, nil
}

func (c *MemoryRenderCache) Set(ctx context.Context, slug string, html string) error {
	c.cache.Set(slug, html, gocache.DefaultExpiration)
	return nil
}

func (c *MemoryRenderCache) Delete(ctx context.Context, slugs ...string) error {
	for _, slug := range slugs {
		c.cache.Delete(slug)
	}
	return nil
}
