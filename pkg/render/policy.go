package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	colorValue  = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgba?\([0-9.,\s%]+\))$`)
	editorClass = regexp.MustCompile(`^cdx-[a-z-]+$`)
)

// inlinePolicy allows the markup the editor's inline tools produce: bold, italic,
// links, text color and highlight. Everything else is stripped.
func inlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "strong", "em", "u", "s", "code", "br", "mark")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowAttrs("color").Matching(colorValue).OnElements("font")
	p.AllowStyles("color", "background-color").Matching(colorValue).OnElements("span", "mark", "font")
	p.AllowAttrs("class").Matching(editorClass).OnElements("span", "mark")
	return p
}
