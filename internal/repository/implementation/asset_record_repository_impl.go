package implementation

import (
	"context"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/mapper"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AssetRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssetRecordMapper
}

func NewAssetRecordRepository(db *gorm.DB) contract.AssetRecordRepository {
	return &AssetRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssetRecordMapper(),
	}
}

func (r *AssetRecordRepositoryImpl) CreateBatch(ctx context.Context, records []*entity.AssetRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*model.AssetRecord, len(records))
	for i, rec := range records {
		models[i] = r.mapper.ToModel(rec)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*records[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *AssetRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AssetRecord, error) {
	var models []*model.AssetRecord
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
