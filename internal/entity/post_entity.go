package entity

import (
	"time"

	"blog-publishing-be/pkg/block"

	"github.com/google/uuid"
)

type Post struct {
	Id            uuid.UUID
	Title         string
	Slug          string
	Summary       string
	Content       block.Finalized
	ContentErr    error // set when the stored content could not be decoded
	IsPublished   bool
	CategoryId    *uuid.UUID
	CoverImageUrl *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
