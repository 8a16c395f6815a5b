package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListPostsRequest struct {
	Page       int        `query:"page" validate:"omitempty,min=1"`
	Limit      int        `query:"limit" validate:"omitempty,min=1,max=100"`
	Search     string     `query:"search" validate:"max=255"`
	CategoryId *uuid.UUID `query:"-"`
}

type PostSummaryResponse struct {
	Id            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Summary       string     `json:"summary"`
	CategoryId    *uuid.UUID `json:"category_id"`
	CoverImageUrl *string    `json:"cover_image_url"`
	IsPublished   bool       `json:"is_published"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type PostListResponse struct {
	Data  []*PostSummaryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// PostDetailResponse carries the raw block document for the admin editor.
type PostDetailResponse struct {
	PostSummaryResponse
	Content any `json:"content"`
}

type UpdatePostRequest struct {
	Id            uuid.UUID  `json:"-"`
	Title         string     `json:"title" validate:"required,max=255"`
	Slug          string     `json:"slug" validate:"omitempty,max=255"`
	Summary       string     `json:"summary" validate:"max=2000"`
	CategoryId    *uuid.UUID `json:"category_id"`
	CoverImageUrl *string    `json:"cover_image_url" validate:"omitempty,url"`
	IsPublished   bool       `json:"is_published"`
}

type UploadCoverResponse struct {
	Url string `json:"url"`
}

type PostLinkResponse struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type PublicPostResponse struct {
	PostSummaryResponse
	Html string            `json:"html"`
	Prev *PostLinkResponse `json:"prev"`
	Next *PostLinkResponse `json:"next"`
}

type RandomPostsRequest struct {
	CategoryId  uuid.UUID `query:"-"`
	ExcludeSlug string    `query:"exclude"`
	Limit       int       `query:"limit" validate:"omitempty,min=1,max=50"`
}

// PublishPostSummaryMessage is queued after a commit when the summary must be derived.
type PublishPostSummaryMessage struct {
	PostId uuid.UUID `json:"post_id"`
}
