package block

// Equal reports whether two blocks are structurally equal. Nil and empty
// slices compare equal.
func Equal(a, b Block) bool {
	if a.ID != b.ID {
		return false
	}
	return equalBody(a.Body, b.Body)
}

func equalBlocks(a, b []Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalBody(a, b Body) bool {
	switch x := a.(type) {
	case Heading:
		y, ok := b.(Heading)
		return ok && x == y
	case Paragraph:
		y, ok := b.(Paragraph)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || x.Style != y.Style || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if x.Items[i].Content != y.Items[i].Content || !equalChecked(x.Items[i].Checked, y.Items[i].Checked) {
				return false
			}
		}
		return true
	case Image:
		y, ok := b.(Image)
		return ok && x.Caption == y.Caption && x.Bordered == y.Bordered &&
			x.Backgrounded == y.Backgrounded && x.Stretched == y.Stretched &&
			equalAsset(x.Asset, y.Asset)
	case Quote:
		y, ok := b.(Quote)
		return ok && x == y
	case Code:
		y, ok := b.(Code)
		return ok && x == y
	case Table:
		y, ok := b.(Table)
		if !ok || len(x.Rows) != len(y.Rows) {
			return false
		}
		for i := range x.Rows {
			if len(x.Rows[i]) != len(y.Rows[i]) {
				return false
			}
			for j := range x.Rows[i] {
				if x.Rows[i][j] != y.Rows[i][j] {
					return false
				}
			}
		}
		return true
	case Delimiter:
		_, ok := b.(Delimiter)
		return ok
	case Embed:
		y, ok := b.(Embed)
		return ok && x == y
	case nil:
		return b == nil
	}
	return false
}

func equalChecked(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalAsset(a, b AssetRef) bool {
	switch x := a.(type) {
	case LocalAsset:
		y, ok := b.(LocalAsset)
		return ok && x == y
	case RemoteAsset:
		y, ok := b.(RemoteAsset)
		return ok && x == y
	case nil:
		return b == nil
	}
	return false
}
