package entity

import (
	"time"

	"blog-publishing-be/pkg/draft"

	"github.com/google/uuid"
)

// Draft is an open editing session. PostId is nil until the first commit creates the post.
// PageKey is set instead when the draft edits a standing page; such a draft never becomes a post.
type Draft struct {
	Id       string
	PostId   *uuid.UUID
	PageKey  string
	Session  *draft.Session
	OpenedAt time.Time
}
