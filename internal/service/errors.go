package service

import (
	"fmt"

	"blog-publishing-be/internal/pkg/serverutils"
)

var (
	ErrPostNotFound      = fmt.Errorf("post %w", serverutils.ErrNotFound)
	ErrDraftNotFound     = fmt.Errorf("draft %w", serverutils.ErrNotFound)
	ErrSlugTaken         = fmt.Errorf("slug already in use: %w", serverutils.ErrConflict)
	ErrUploadUnsupported = fmt.Errorf("object uploads need the local asset store: %w", serverutils.ErrBadRequest)
	ErrEmptyFile         = fmt.Errorf("uploaded file is empty: %w", serverutils.ErrBadRequest)
	ErrPageNotFound      = fmt.Errorf("page %w", serverutils.ErrNotFound)
	ErrPageDraft         = fmt.Errorf("draft edits a page, commit it through the page route: %w", serverutils.ErrConflict)
	ErrNotPageDraft      = fmt.Errorf("draft does not edit this page: %w", serverutils.ErrConflict)
)
