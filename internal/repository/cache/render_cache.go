package cache

import "context"

// RenderCache holds rendered post HTML keyed by slug.
type RenderCache interface {
	Get(ctx context.Context, slug string) (string, bool, error)
	Set(ctx context.Context, slug string, html string) error
	Delete(ctx context.Context, slugs ...string) error
}
