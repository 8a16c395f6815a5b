package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/mapper"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/pkg/block"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PageMapper
}

func NewPageRepository(db *gorm.DB) contract.PageRepository {
	return &PageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPageMapper(),
	}
}

func (r *PageRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.Page, error) {
	var m model.Page
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Save creates the page on first write and replaces its content afterwards.
func (r *PageRepositoryImpl) Save(ctx context.Context, key string, doc block.Finalized) (*entity.Page, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m := &model.Page{Key: key, Content: datatypes.JSON(data), CreatedAt: now, UpdatedAt: now}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return &entity.Page{Key: key, Content: doc, UpdatedAt: now}, nil
}
