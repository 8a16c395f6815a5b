package mapper

import (
	"encoding/json"
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/pkg/block"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostMapper struct{}

func NewPostMapper() *PostMapper {
	return &PostMapper{}
}

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	// A broken document still maps; the error travels with the entity so that
	// listings keep working and rendering can fall back.
	var content block.Finalized
	var contentErr error
	if len(p.Content) > 0 {
		contentErr = json.Unmarshal(p.Content, &content)
	}

	return &entity.Post{
		Id:            p.Id,
		Title:         p.Title,
		Slug:          p.Slug,
		Summary:       p.Summary,
		Content:       content,
		ContentErr:    contentErr,
		IsPublished:   p.IsPublished,
		CategoryId:    p.CategoryId,
		CoverImageUrl: p.CoverImageUrl,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		IsDeleted:     p.DeletedAt.Valid,
	}
}

func (m *PostMapper) ToModel(p *entity.Post) (*model.Post, error) {
	if p == nil {
		return nil, nil
	}

	content, err := json.Marshal(p.Content)
	if err != nil {
		return nil, err
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Post{
		Id:            p.Id,
		Title:         p.Title,
		Slug:          p.Slug,
		Summary:       p.Summary,
		Content:       datatypes.JSON(content),
		IsPublished:   p.IsPublished,
		CategoryId:    p.CategoryId,
		CoverImageUrl: p.CoverImageUrl,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
	}, nil
}

func (m *PostMapper) ToEntities(posts []*model.Post) []*entity.Post {
	entities := make([]*entity.Post, len(posts))
	for i, p := range posts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
