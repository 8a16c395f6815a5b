package model

import (
	"time"

	"gorm.io/datatypes"
)

// Page is a standing document addressed by a fixed key, such as the about page.
type Page struct {
	Key       string         `gorm:"type:varchar(64);primaryKey"`
	Content   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Page) TableName() string {
	return "pages"
}
