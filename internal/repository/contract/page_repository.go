package contract

import (
	"context"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/pkg/block"
)

// PageRepository is the Document Store for standing pages keyed by name.
type PageRepository interface {
	// FindByKey returns nil when the page has never been written.
	FindByKey(ctx context.Context, key string) (*entity.Page, error)
	Save(ctx context.Context, key string, doc block.Finalized) (*entity.Page, error)
}
