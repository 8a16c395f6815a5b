package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// EditorVersion is written into serialized documents for the editor front end.
const EditorVersion = "2.31.0"

// Wire type tags. These are the contract with the editor and any separately deployed reader.
const (
	TypeHeader    = "header"
	TypeParagraph = "paragraph"
	TypeList      = "list"
	TypeImage     = "image"
	TypeQuote     = "quote"
	TypeCode      = "code"
	TypeTable     = "table"
	TypeDelimiter = "delimiter"
	TypeEmbed     = "embed"
)

var errUnresolvedAsset = errors.New("local asset reference in finalized document")

type wireDocument struct {
	Time    int64       `json:"time,omitempty"`
	Blocks  []wireBlock `json:"blocks"`
	Version string      `json:"version,omitempty"`
}

type wireBlock struct {
	ID   string          `json:"id,omitempty"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type headerData struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

type paragraphData struct {
	Text string `json:"text"`
}

type listData struct {
	Style string         `json:"style"`
	Items []listItemData `json:"items"`
}

type listItemMeta struct {
	Checked *bool `json:"checked,omitempty"`
}

type listItemData struct {
	Content string         `json:"content"`
	Meta    listItemMeta   `json:"meta"`
	Items   []listItemData `json:"items"`
}

// UnmarshalJSON also accepts the older list format where items are bare strings.
func (it *listItemData) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &it.Content)
	}
	type plain listItemData
	return json.Unmarshal(data, (*plain)(it))
}

type imageFile struct {
	URL    string `json:"url,omitempty"`
	TempID string `json:"tempId,omitempty"`
	Name   string `json:"name,omitempty"`
}

type imageData struct {
	File           imageFile `json:"file"`
	Caption        string    `json:"caption"`
	WithBorder     bool      `json:"withBorder"`
	WithBackground bool      `json:"withBackground"`
	Stretched      bool      `json:"stretched"`
}

type quoteData struct {
	Text      string `json:"text"`
	Caption   string `json:"caption"`
	Alignment string `json:"alignment,omitempty"`
}

type codeData struct {
	Code string `json:"code"`
}

type tableData struct {
	WithHeadings bool       `json:"withHeadings"`
	Content      [][]string `json:"content"`
}

type embedData struct {
	Service string `json:"service,omitempty"`
	Source  string `json:"source,omitempty"`
	Embed   string `json:"embed"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Caption string `json:"caption,omitempty"`
}

func (d Draft) MarshalJSON() ([]byte, error) {
	return encodeBlocks(d.blocks)
}

func (d *Draft) UnmarshalJSON(data []byte) error {
	blocks, err := decodeBlocks(data)
	if err != nil {
		return err
	}
	d.blocks = blocks
	return nil
}

func (f Finalized) MarshalJSON() ([]byte, error) {
	return encodeBlocks(f.blocks)
}

// UnmarshalJSON rejects local asset references but does not run Validate:
// a stored document that breaks an invariant is reported when it is rendered.
func (f *Finalized) UnmarshalJSON(data []byte) error {
	blocks, err := decodeBlocks(data)
	if err != nil {
		return err
	}
	for i, b := range blocks {
		if ref, ok := b.Asset(); ok {
			if _, local := ref.(LocalAsset); local {
				return &DecodeError{Index: i, Type: TypeImage, Err: errUnresolvedAsset}
			}
		}
	}
	f.blocks = blocks
	return nil
}

func encodeBlocks(blocks []Block) ([]byte, error) {
	doc := wireDocument{Blocks: make([]wireBlock, 0, len(blocks)), Version: EditorVersion}
	for i, b := range blocks {
		tag, payload, err := encodeBody(b.Body)
		if err != nil {
			return nil, fmt.Errorf("encode block %d: %w", i, err)
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode block %d: %w", i, err)
		}
		doc.Blocks = append(doc.Blocks, wireBlock{ID: b.ID, Type: tag, Data: data})
	}
	return json.Marshal(doc)
}

func encodeBody(body Body) (string, any, error) {
	switch b := body.(type) {
	case Heading:
		return TypeHeader, headerData{Text: string(b.Text), Level: b.Level}, nil
	case Paragraph:
		return TypeParagraph, paragraphData{Text: string(b.Text)}, nil
	case List:
		items := make([]listItemData, len(b.Items))
		for i, item := range b.Items {
			items[i] = listItemData{
				Content: string(item.Content),
				Meta:    listItemMeta{Checked: item.Checked},
				Items:   []listItemData{},
			}
		}
		return TypeList, listData{Style: string(b.Style), Items: items}, nil
	case Image:
		data := imageData{
			Caption:        string(b.Caption),
			WithBorder:     b.Bordered,
			WithBackground: b.Backgrounded,
			Stretched:      b.Stretched,
		}
		switch ref := b.Asset.(type) {
		case LocalAsset:
			data.File = imageFile{TempID: ref.TemporaryID, Name: ref.DisplayName}
		case RemoteAsset:
			data.File = imageFile{URL: ref.URL}
		default:
			return "", nil, errors.New("image without asset reference")
		}
		return TypeImage, data, nil
	case Quote:
		return TypeQuote, quoteData{Text: string(b.Text), Caption: string(b.Caption), Alignment: b.Alignment}, nil
	case Code:
		return TypeCode, codeData{Code: b.Code}, nil
	case Table:
		rows := b.Rows
		if rows == nil {
			rows = [][]string{}
		}
		return TypeTable, tableData{Content: rows}, nil
	case Delimiter:
		return TypeDelimiter, struct{}{}, nil
	case Embed:
		return TypeEmbed, embedData{
			Service: b.Service,
			Source:  b.Source,
			Embed:   b.URL,
			Width:   b.Width,
			Height:  b.Height,
			Caption: string(b.Caption),
		}, nil
	case nil:
		return "", nil, errors.New("missing body")
	}
	return "", nil, fmt.Errorf("unsupported body %T", body)
}

func decodeBlocks(data []byte) ([]Block, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if len(doc.Blocks) == 0 {
		return nil, nil
	}
	blocks := make([]Block, 0, len(doc.Blocks))
	for i, wb := range doc.Blocks {
		body, err := decodeBody(wb.Type, wb.Data)
		if err != nil {
			return nil, &DecodeError{Index: i, Type: wb.Type, Err: err}
		}
		blocks = append(blocks, Block{ID: wb.ID, Body: body})
	}
	return blocks, nil
}

func decodeBody(tag string, raw json.RawMessage) (Body, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch tag {
	case TypeHeader:
		var d headerData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return Heading{Level: d.Level, Text: InlineText(d.Text)}, nil
	case TypeParagraph:
		var d paragraphData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return Paragraph{Text: InlineText(d.Text)}, nil
	case TypeList:
		var d listData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		list := List{Style: ListStyle(d.Style)}
		for i, item := range d.Items {
			if len(item.Items) > 0 {
				return nil, fmt.Errorf("item %d: nested list items are not supported", i)
			}
			list.Items = append(list.Items, ListItem{Content: InlineText(item.Content), Checked: item.Meta.Checked})
		}
		return list, nil
	case TypeImage:
		var d imageData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		img := Image{
			Caption:      InlineText(d.Caption),
			Bordered:     d.WithBorder,
			Backgrounded: d.WithBackground,
			Stretched:    d.Stretched,
		}
		switch {
		case d.File.TempID != "":
			img.Asset = LocalAsset{TemporaryID: d.File.TempID, DisplayName: d.File.Name}
		case d.File.URL != "":
			img.Asset = RemoteAsset{URL: d.File.URL}
		default:
			return nil, errors.New("image file has neither url nor tempId")
		}
		return img, nil
	case TypeQuote:
		var d quoteData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return Quote{Text: InlineText(d.Text), Caption: InlineText(d.Caption), Alignment: d.Alignment}, nil
	case TypeCode:
		var d codeData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return Code{Code: d.Code}, nil
	case TypeTable:
		var d tableData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return Table{Rows: d.Content}, nil
	case TypeDelimiter:
		return Delimiter{}, nil
	case TypeEmbed:
		var d embedData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return Embed{
			URL:     d.Embed,
			Service: d.Service,
			Source:  d.Source,
			Width:   d.Width,
			Height:  d.Height,
			Caption: InlineText(d.Caption),
		}, nil
	}
	return nil, fmt.Errorf("unknown block type %q", tag)
}
