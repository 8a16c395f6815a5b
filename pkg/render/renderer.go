package render

import (
	"fmt"
	"html"
	"strings"

	"blog-publishing-be/pkg/block"

	"github.com/microcosm-cc/bluemonday"
)

// Unavailable replaces a document that failed to render.
const Unavailable = `<p class="text-red-500">Content unavailable</p>`

// Renderer turns finalized documents into HTML. It is safe for concurrent use.
type Renderer struct {
	inline *bluemonday.Policy
	strict *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		inline: inlinePolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Render validates doc and renders every block in order. The same document always
// yields the same output.
func (r *Renderer) Render(doc block.Finalized) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", &RenderError{Err: err}
	}

	blocks := doc.Blocks()
	parts := make([]string, 0, len(blocks))
	for i, b := range blocks {
		out, err := r.renderBlock(b)
		if err != nil {
			return "", &RenderError{Err: fmt.Errorf("block %d: %w", i, err)}
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}

// RenderOrFallback never fails; a broken document renders as Unavailable.
func (r *Renderer) RenderOrFallback(doc block.Finalized) (string, error) {
	out, err := r.Render(doc)
	if err != nil {
		return Unavailable, err
	}
	return out, nil
}

func (r *Renderer) renderBlock(b block.Block) (string, error) {
	switch body := b.Body.(type) {
	case block.Heading:
		return fmt.Sprintf("<h%d>%s</h%d>", body.Level, r.text(body.Text), body.Level), nil
	case block.Paragraph:
		return "<p>" + r.text(body.Text) + "</p>", nil
	case block.List:
		return r.list(body), nil
	case block.Image:
		return r.image(body)
	case block.Quote:
		out := "<blockquote>" + r.text(body.Text)
		if body.Caption != "" {
			out += "<br/>— " + r.text(body.Caption)
		}
		return out + "</blockquote>", nil
	case block.Code:
		return "<pre><code>" + html.EscapeString(body.Code) + "</code></pre>", nil
	case block.Table:
		return table(body), nil
	case block.Delimiter:
		return `<div class="text-center my-6 text-xl text-gray-400">* * *</div>`, nil
	case block.Embed:
		return `<div class="aspect-video w-full my-4 rounded overflow-hidden">` +
			`<iframe class="w-full h-full" src="` + html.EscapeString(body.URL) + `" frameborder="0" allowfullscreen></iframe>` +
			`</div>`, nil
	}
	return "", fmt.Errorf("unsupported block kind %q", b.Kind())
}

func (r *Renderer) text(t block.InlineText) string {
	return r.inline.Sanitize(string(t))
}

func (r *Renderer) list(l block.List) string {
	var sb strings.Builder
	if l.Style == block.ListChecklist {
		for _, item := range l.Items {
			checked := ""
			if item.Checked != nil && *item.Checked {
				checked = " checked"
			}
			sb.WriteString(`<div class="flex items-center gap-2 mb-1">`)
			sb.WriteString(`<input type="checkbox"` + checked + ` disabled />`)
			sb.WriteString("<span>" + r.text(item.Content) + "</span>")
			sb.WriteString("</div>")
		}
		return sb.String()
	}

	tag := "ul"
	if l.Style == block.ListOrdered {
		tag = "ol"
	}
	sb.WriteString("<" + tag + ">")
	for _, item := range l.Items {
		sb.WriteString("<li>" + r.text(item.Content) + "</li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}

func (r *Renderer) image(img block.Image) (string, error) {
	remote, ok := img.Asset.(block.RemoteAsset)
	if !ok {
		return "", fmt.Errorf("image without remote asset")
	}

	classes := []string{"my-4"}
	if img.Bordered {
		classes = append(classes, "border border-gray-300")
	}
	if img.Backgrounded {
		classes = append(classes, "bg-gray-100 p-4")
	}
	if img.Stretched {
		classes = append(classes, "w-full")
	} else {
		classes = append(classes, "max-w-[90%] mx-auto")
	}
	classes = append(classes, "rounded shadow-sm")

	alt := html.EscapeString(html.UnescapeString(r.strict.Sanitize(string(img.Caption))))

	var sb strings.Builder
	sb.WriteString(`<div class="` + strings.Join(classes, " ") + `">`)
	sb.WriteString(`<img src="` + html.EscapeString(remote.URL) + `" alt="` + alt + `" class="w-full h-auto object-contain" />`)
	if img.Caption != "" {
		sb.WriteString(`<div class="text-sm text-gray-500 mt-2 text-center">` + r.text(img.Caption) + `</div>`)
	}
	sb.WriteString("</div>")
	return sb.String(), nil
}

func table(t block.Table) string {
	var sb strings.Builder
	sb.WriteString(`<div class="overflow-x-auto w-full my-4">`)
	sb.WriteString(`<table class="min-w-[600px] table-auto border-collapse border border-gray-300"><tbody>`)
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString(`<td class="border px-4 py-2 whitespace-nowrap">` + html.EscapeString(cell) + "</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table></div>")
	return sb.String()
}
