package mapper

import (
	"encoding/json"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"
)

type PageMapper struct{}

func NewPageMapper() *PageMapper {
	return &PageMapper{}
}

func (m *PageMapper) ToEntity(p *model.Page) *entity.Page {
	if p == nil {
		return nil
	}
	page := &entity.Page{
		Key:       p.Key,
		UpdatedAt: p.UpdatedAt,
	}
	if len(p.Content) > 0 {
		page.ContentErr = json.Unmarshal(p.Content, &page.Content)
	}
	return page
}
