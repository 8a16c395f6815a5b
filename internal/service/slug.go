package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// slugify keeps letters and digits of any script and joins the rest with dashes.
// A title with nothing usable gets a random slug.
func slugify(title string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return uuid.NewString()[:8]
	}
	return slug
}
