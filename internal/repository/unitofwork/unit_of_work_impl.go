package unitofwork

import (
	"context"
	"fmt"

	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) PostRepository() contract.PostRepository {
	return implementation.NewPostRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AssetRecordRepository() contract.AssetRecordRepository {
	return implementation.NewAssetRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentStore() contract.DocumentStore {
	return implementation.NewDocumentStore(u.getDB())
}

func (u *UnitOfWorkImpl) PageRepository() contract.PageRepository {
	return implementation.NewPageRepository(u.getDB())
}
