package contract

import (
	"context"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
