package model

import (
	"time"

	"github.com/google/uuid"
)

type AssetRecord struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostId      uuid.UUID `gorm:"type:uuid;not null;index"`
	DraftId     string    `gorm:"type:varchar(64);not null;index"`
	TemporaryId string    `gorm:"type:varchar(64);not null"`
	Name        string    `gorm:"type:varchar(255)"`
	Url         string    `gorm:"type:text;not null"`
	Size        int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (AssetRecord) TableName() string {
	return "asset_records"
}
