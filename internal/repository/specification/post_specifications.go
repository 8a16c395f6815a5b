package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ExcludeSlug struct {
	Slug string
}

func (s ExcludeSlug) Apply(db *gorm.DB) *gorm.DB {
	if s.Slug == "" {
		return db
	}
	return db.Where("slug <> ?", s.Slug)
}

type Published struct{}

func (s Published) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true)
}

type ByCategoryID struct {
	CategoryID uuid.UUID
}

func (s ByCategoryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category_id = ?", s.CategoryID)
}

// PostTitleSearch matches a case-insensitive substring of the title.
type PostTitleSearch struct {
	Query string
}

func (s PostTitleSearch) Apply(db *gorm.DB) *gorm.DB {
	if s.Query == "" {
		return db
	}
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}

// CreatedBefore and CreatedAfter walk a category in creation order for prev/next links.
type CreatedBefore struct {
	At time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.At)
}

type CreatedAfter struct {
	At time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.At)
}

type RandomOrder struct{}

func (s RandomOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("RANDOM()")
}

type ByPostID struct {
	PostID uuid.UUID
}

func (s ByPostID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("post_id = ?", s.PostID)
}
