package mapper

import (
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"
)

type AssetRecordMapper struct{}

func NewAssetRecordMapper() *AssetRecordMapper {
	return &AssetRecordMapper{}
}

func (m *AssetRecordMapper) ToEntity(r *model.AssetRecord) *entity.AssetRecord {
	if r == nil {
		return nil
	}
	return &entity.AssetRecord{
		Id:          r.Id,
		PostId:      r.PostId,
		DraftId:     r.DraftId,
		TemporaryId: r.TemporaryId,
		Name:        r.Name,
		Url:         r.Url,
		Size:        r.Size,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *AssetRecordMapper) ToModel(r *entity.AssetRecord) *model.AssetRecord {
	if r == nil {
		return nil
	}
	return &model.AssetRecord{
		Id:          r.Id,
		PostId:      r.PostId,
		DraftId:     r.DraftId,
		TemporaryId: r.TemporaryId,
		Name:        r.Name,
		Url:         r.Url,
		Size:        r.Size,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *AssetRecordMapper) ToEntities(records []*model.AssetRecord) []*entity.AssetRecord {
	entities := make([]*entity.AssetRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
