package entity

import (
	"time"

	"github.com/google/uuid"
)

// AssetRecord is an audit row for one asset uploaded during a draft commit.
type AssetRecord struct {
	Id          uuid.UUID
	PostId      uuid.UUID
	DraftId     string
	TemporaryId string
	Name        string
	Url         string
	Size        int64
	CreatedAt   time.Time
}
