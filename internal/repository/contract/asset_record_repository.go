package contract

import (
	"context"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/repository/specification"
)

type AssetRecordRepository interface {
	CreateBatch(ctx context.Context, records []*entity.AssetRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AssetRecord, error)
}
