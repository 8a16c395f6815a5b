package block

import "fmt"

// Validate checks every structural invariant of a block sequence and returns the
// first violation as a *StructuralError. It has no side effects.
func Validate(blocks []Block) error {
	for i, b := range blocks {
		if err := validateBlock(i, b); err != nil {
			return err
		}
	}
	return nil
}

func validateBlock(i int, b Block) error {
	fail := func(format string, args ...any) error {
		return &StructuralError{Index: i, Kind: b.Kind(), Reason: fmt.Sprintf(format, args...)}
	}

	switch body := b.Body.(type) {
	case Heading:
		if body.Level < MinHeadingLevel || body.Level > MaxHeadingLevel {
			return fail("heading level %d outside [%d,%d]", body.Level, MinHeadingLevel, MaxHeadingLevel)
		}
	case Paragraph, Quote, Code, Delimiter:
	case List:
		switch body.Style {
		case ListOrdered, ListUnordered:
			for j, item := range body.Items {
				if item.Checked != nil {
					return fail("item %d has checked state on a %s list", j, body.Style)
				}
			}
		case ListChecklist:
		default:
			return fail("unknown list style %q", body.Style)
		}
	case Image:
		switch ref := body.Asset.(type) {
		case LocalAsset:
			if ref.TemporaryID == "" {
				return fail("local asset without temporary id")
			}
		case RemoteAsset:
			if ref.URL == "" {
				return fail("remote asset without url")
			}
		default:
			return fail("image without asset reference")
		}
	case Table:
		for r, row := range body.Rows {
			if len(row) != len(body.Rows[0]) {
				return fail("row %d has %d cells, row 0 has %d", r, len(row), len(body.Rows[0]))
			}
		}
	case Embed:
		if body.URL == "" {
			return fail("embed without url")
		}
	case nil:
		return fail("missing body")
	default:
		return fail("unsupported body %T", body)
	}
	return nil
}

// LocalRefs returns the distinct local asset references of blocks in order of first appearance.
func LocalRefs(blocks []Block) []LocalAsset {
	seen := make(map[string]bool)
	var refs []LocalAsset
	for _, b := range blocks {
		ref, ok := b.Asset()
		if !ok {
			continue
		}
		local, ok := ref.(LocalAsset)
		if !ok || seen[local.TemporaryID] {
			continue
		}
		seen[local.TemporaryID] = true
		refs = append(refs, local)
	}
	return refs
}
