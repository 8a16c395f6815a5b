package block

// Kind identifies one of the closed set of block variants.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
	KindImage     Kind = "image"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindTable     Kind = "table"
	KindDelimiter Kind = "delimiter"
	KindEmbed     Kind = "embed"
)

// Heading levels accepted by the editor
const (
	MinHeadingLevel = 2
	MaxHeadingLevel = 4
)

// InlineText is an inline markup fragment (bold, italic, link, text color, highlight).
// It is sanitized at render time, never trusted.
type InlineText string

// Block is one content unit of a document. Blocks are values: edits produce a new Block.
type Block struct {
	ID   string
	Body Body
}

// Body is the kind-specific payload. The set of implementations is closed to this package.
type Body interface {
	Kind() Kind
	isBody()
}

// Kind returns the variant of the block, or "" for a block without a body.
func (b Block) Kind() Kind {
	if b.Body == nil {
		return ""
	}
	return b.Body.Kind()
}

// WithBody returns a copy of b carrying body.
func (b Block) WithBody(body Body) Block {
	return Block{ID: b.ID, Body: body}
}

// Asset returns the asset reference of an image block.
func (b Block) Asset() (AssetRef, bool) {
	img, ok := b.Body.(Image)
	if !ok || img.Asset == nil {
		return nil, false
	}
	return img.Asset, true
}

type Heading struct {
	Level int
	Text  InlineText
}

type Paragraph struct {
	Text InlineText
}

// ListStyle selects how list items are marked.
type ListStyle string

const (
	ListOrdered   ListStyle = "ordered"
	ListUnordered ListStyle = "unordered"
	ListChecklist ListStyle = "checklist"
)

// ListItem carries Checked only for checklist lists; nil means "not set".
type ListItem struct {
	Content InlineText
	Checked *bool
}

type List struct {
	Style ListStyle
	Items []ListItem
}

// Image flags are independent of each other.
type Image struct {
	Asset        AssetRef
	Caption      InlineText
	Bordered     bool
	Backgrounded bool
	Stretched    bool
}

type Quote struct {
	Text      InlineText
	Caption   InlineText
	Alignment string
}

// Code holds raw, uninterpreted text.
type Code struct {
	Code string
}

// Table rows are plain-text cells; all rows must have the same length.
type Table struct {
	Rows [][]string
}

type Delimiter struct{}

// Embed points at third-party embeddable content. The URL is operator-authored.
type Embed struct {
	URL     string
	Service string
	Source  string
	Width   int
	Height  int
	Caption InlineText
}

func (Heading) Kind() Kind   { return KindHeading }
func (Paragraph) Kind() Kind { return KindParagraph }
func (List) Kind() Kind      { return KindList }
func (Image) Kind() Kind     { return KindImage }
func (Quote) Kind() Kind     { return KindQuote }
func (Code) Kind() Kind      { return KindCode }
func (Table) Kind() Kind     { return KindTable }
func (Delimiter) Kind() Kind { return KindDelimiter }
func (Embed) Kind() Kind     { return KindEmbed }

func (Heading) isBody()   {}
func (Paragraph) isBody() {}
func (List) isBody()      {}
func (Image) isBody()     {}
func (Quote) isBody()     {}
func (Code) isBody()      {}
func (Table) isBody()     {}
func (Delimiter) isBody() {}
func (Embed) isBody()     {}

// AssetRef points at media content: LocalAsset inside a draft, RemoteAsset once durable.
type AssetRef interface {
	isAssetRef()
}

// LocalAsset is staged in a draft session and has not been uploaded yet.
// TemporaryID is only unique within the session that issued it.
type LocalAsset struct {
	TemporaryID string
	DisplayName string
}

// RemoteAsset is a durable URL any reader can resolve.
type RemoteAsset struct {
	URL string
}

func (LocalAsset) isAssetRef()  {}
func (RemoteAsset) isAssetRef() {}

// Constructors

func NewHeading(level int, text string) Block {
	return Block{Body: Heading{Level: level, Text: InlineText(text)}}
}

func NewParagraph(text string) Block {
	return Block{Body: Paragraph{Text: InlineText(text)}}
}

func NewList(style ListStyle, items ...ListItem) Block {
	return Block{Body: List{Style: style, Items: append([]ListItem(nil), items...)}}
}

// Item builds a plain list item.
func Item(content string) ListItem {
	return ListItem{Content: InlineText(content)}
}

// CheckItem builds a checklist item.
func CheckItem(content string, checked bool) ListItem {
	return ListItem{Content: InlineText(content), Checked: &checked}
}

func NewLocalImage(temporaryID, displayName, caption string) Block {
	return Block{Body: Image{
		Asset:   LocalAsset{TemporaryID: temporaryID, DisplayName: displayName},
		Caption: InlineText(caption),
	}}
}

func NewRemoteImage(url, caption string) Block {
	return Block{Body: Image{Asset: RemoteAsset{URL: url}, Caption: InlineText(caption)}}
}

func NewQuote(text, caption string) Block {
	return Block{Body: Quote{Text: InlineText(text), Caption: InlineText(caption)}}
}

func NewCode(code string) Block {
	return Block{Body: Code{Code: code}}
}

func NewTable(rows ...[]string) Block {
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return Block{Body: Table{Rows: copied}}
}

func NewDelimiter() Block {
	return Block{Body: Delimiter{}}
}

func NewEmbed(url string) Block {
	return Block{Body: Embed{URL: url}}
}
