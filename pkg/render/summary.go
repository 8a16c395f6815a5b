package render

import (
	"regexp"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// SummaryLength is the default excerpt size, in runes.
const SummaryLength = 160

var (
	escapes       = regexp.MustCompile(`\\(\S)`)
	markdownMarks = regexp.MustCompile("[*_`#>|~]+|!?\\[([^\\]]*)\\]\\([^)]*\\)")
	whitespace    = regexp.MustCompile(`\s+`)
	tags          = regexp.MustCompile(`<[^>]*>`)
)

// Excerpter turns rendered HTML into a short plain-text summary.
type Excerpter struct {
	converter *md.Converter
}

func NewExcerpter() *Excerpter {
	return &Excerpter{converter: md.NewConverter("", true, nil)}
}

// Excerpt returns at most limit runes of readable text from rendered HTML.
func (e *Excerpter) Excerpt(renderedHTML string, limit int) string {
	text, err := e.converter.ConvertString(renderedHTML)
	if err != nil {
		text = tags.ReplaceAllString(renderedHTML, " ")
	}
	text = escapes.ReplaceAllString(text, "$1")
	text = markdownMarks.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))

	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return strings.TrimSpace(string([]rune(text)[:limit]))
}
