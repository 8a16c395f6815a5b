package unitofwork

import (
	"context"

	"blog-publishing-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PostRepository() contract.PostRepository
	AssetRecordRepository() contract.AssetRecordRepository
	DocumentStore() contract.DocumentStore
	PageRepository() contract.PageRepository
}
