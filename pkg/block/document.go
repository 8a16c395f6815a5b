package block

import "fmt"

// Draft is a mutable-by-copy document that may still hold LocalAsset references.
// Every edit returns a new Draft; the receiver is left untouched, so older values
// remain valid snapshots.
type Draft struct {
	blocks []Block
}

// Finalized is a document whose asset references are all durable. Only Finalized
// documents are persisted or rendered.
type Finalized struct {
	blocks []Block
}

func NewDraft(blocks ...Block) Draft {
	return Draft{blocks: cloneBlocks(blocks)}
}

// Blocks returns a copy of the block sequence.
func (d Draft) Blocks() []Block {
	return cloneBlocks(d.blocks)
}

func (d Draft) Len() int {
	return len(d.blocks)
}

func (d Draft) Validate() error {
	return Validate(d.blocks)
}

func (d Draft) Append(blocks ...Block) Draft {
	next := make([]Block, 0, len(d.blocks)+len(blocks))
	next = append(next, d.blocks...)
	for _, b := range blocks {
		next = append(next, cloneBlock(b))
	}
	return Draft{blocks: next}
}

func (d Draft) Insert(i int, b Block) (Draft, error) {
	if i < 0 || i > len(d.blocks) {
		return d, fmt.Errorf("insert index %d out of range [0,%d]", i, len(d.blocks))
	}
	next := make([]Block, 0, len(d.blocks)+1)
	next = append(next, d.blocks[:i]...)
	next = append(next, cloneBlock(b))
	next = append(next, d.blocks[i:]...)
	return Draft{blocks: next}, nil
}

func (d Draft) Replace(i int, b Block) (Draft, error) {
	if i < 0 || i >= len(d.blocks) {
		return d, fmt.Errorf("replace index %d out of range [0,%d)", i, len(d.blocks))
	}
	next := append([]Block(nil), d.blocks...)
	next[i] = cloneBlock(b)
	return Draft{blocks: next}, nil
}

func (d Draft) Remove(i int) (Draft, error) {
	if i < 0 || i >= len(d.blocks) {
		return d, fmt.Errorf("remove index %d out of range [0,%d)", i, len(d.blocks))
	}
	next := make([]Block, 0, len(d.blocks)-1)
	next = append(next, d.blocks[:i]...)
	next = append(next, d.blocks[i+1:]...)
	return Draft{blocks: next}, nil
}

func (d Draft) LocalRefs() []LocalAsset {
	return LocalRefs(d.blocks)
}

func (d Draft) Equal(other Draft) bool {
	return equalBlocks(d.blocks, other.blocks)
}

// Finalize validates blocks and checks that no LocalAsset reference is left.
func Finalize(blocks []Block) (Finalized, error) {
	if err := Validate(blocks); err != nil {
		return Finalized{}, err
	}
	for i, b := range blocks {
		if ref, ok := b.Asset(); ok {
			if _, local := ref.(LocalAsset); local {
				return Finalized{}, &StructuralError{Index: i, Kind: b.Kind(), Reason: "unresolved local asset"}
			}
		}
	}
	return Finalized{blocks: cloneBlocks(blocks)}, nil
}

// Blocks returns a copy of the block sequence.
func (f Finalized) Blocks() []Block {
	return cloneBlocks(f.blocks)
}

func (f Finalized) Len() int {
	return len(f.blocks)
}

// Validate re-checks the invariants. Documents decoded from storage are not validated
// on load, so callers rendering them must run this first.
func (f Finalized) Validate() error {
	return Validate(f.blocks)
}

// Reopen hands the document back to an editor. Remote references are kept as they are.
func (f Finalized) Reopen() Draft {
	return Draft{blocks: cloneBlocks(f.blocks)}
}

func (f Finalized) Equal(other Finalized) bool {
	return equalBlocks(f.blocks, other.blocks)
}

// cloneBlocks copies blocks deeply enough that no slice or pointer is shared with
// the input. Documents keep their own copy and hand out copies, so a caller
// can never reach the stored state.
func cloneBlocks(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = cloneBlock(b)
	}
	return out
}

func cloneBlock(b Block) Block {
	switch body := b.Body.(type) {
	case List:
		if body.Items != nil {
			items := make([]ListItem, len(body.Items))
			for i, item := range body.Items {
				if item.Checked != nil {
					checked := *item.Checked
					item.Checked = &checked
				}
				items[i] = item
			}
			body.Items = items
		}
		return b.WithBody(body)
	case Table:
		if body.Rows != nil {
			rows := make([][]string, len(body.Rows))
			for i, row := range body.Rows {
				if row != nil {
					rows[i] = append([]string{}, row...)
				}
			}
			body.Rows = rows
		}
		return b.WithBody(body)
	}
	return b
}
