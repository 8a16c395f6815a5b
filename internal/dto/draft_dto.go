package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OpenDraftRequest struct {
	PostId *uuid.UUID `json:"post_id"`
}

type StagedAssetResponse struct {
	TemporaryId string `json:"temporary_id"`
	Name        string `json:"name"`
	Size        int    `json:"size"`
}

type DraftResponse struct {
	Id       string                 `json:"id"`
	PostId   *uuid.UUID             `json:"post_id"`
	PageKey  string                 `json:"page_key,omitempty"`
	Content  json.RawMessage        `json:"content"`
	Staged   []*StagedAssetResponse `json:"staged"`
	Resolved map[string]string      `json:"resolved"`
	OpenedAt time.Time              `json:"opened_at"`
}

type StageAssetResponse struct {
	TemporaryId string `json:"temporary_id"`
	Name        string `json:"name"`
}

type CommitDraftRequest struct {
	Title         string     `json:"title" validate:"required,max=255"`
	Slug          string     `json:"slug" validate:"omitempty,max=255"`
	Summary       string     `json:"summary" validate:"max=2000"`
	CategoryId    *uuid.UUID `json:"category_id"`
	CoverImageUrl *string    `json:"cover_image_url" validate:"omitempty,url"`
	IsPublished   bool       `json:"is_published"`
}

type UploadedAssetResponse struct {
	TemporaryId string `json:"temporary_id"`
	Url         string `json:"url"`
}

type CommitDraftResponse struct {
	PostId   uuid.UUID                `json:"post_id"`
	Slug     string                   `json:"slug"`
	Uploaded []*UploadedAssetResponse `json:"uploaded"`
}
