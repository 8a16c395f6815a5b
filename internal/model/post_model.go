package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string         `gorm:"type:varchar(255);not null"`
	Slug          string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Summary       string         `gorm:"type:text"`
	Content       datatypes.JSON `gorm:"type:jsonb"`
	IsPublished   bool           `gorm:"not null;default:false;index"`
	CategoryId    *uuid.UUID     `gorm:"type:uuid;index"`
	CoverImageUrl *string        `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}
