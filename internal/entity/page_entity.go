package entity

import (
	"time"

	"blog-publishing-be/pkg/block"
)

const AboutPageKey = "about"

type Page struct {
	Key        string
	Content    block.Finalized
	ContentErr error // set when the stored content could not be decoded
	UpdatedAt  time.Time
}
