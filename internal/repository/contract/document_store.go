package contract

import (
	"context"

	"blog-publishing-be/pkg/block"

	"github.com/google/uuid"
)

// DocumentStore persists the finalized content of a post, nothing else.
type DocumentStore interface {
	Load(ctx context.Context, documentId uuid.UUID) (block.Finalized, error)
	Save(ctx context.Context, documentId uuid.UUID, doc block.Finalized) error
}
