package markup

// Equal reports structural equivalence of two trees. Adjacent text runs are
// compared as their concatenation, cursor-marker elements are skipped, so a
// tree rebuilt by playback compares equal to the source it was linearized
// from.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindText {
		return a.Text == b.Text
	}
	if a.Tag != b.Tag || !attrsEqual(a.Attrs, b.Attrs) {
		return false
	}
	ac := normalizeChildren(a.Children)
	bc := normalizeChildren(b.Children)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func attrsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// normalizeChildren drops cursor markers and merges adjacent text runs
func normalizeChildren(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, child := range children {
		if child.Kind == KindElement && child.Tag == TagCursor {
			continue
		}
		if child.Kind == KindText {
			if len(out) > 0 && out[len(out)-1].Kind == KindText {
				merged := NewText(out[len(out)-1].Text + child.Text)
				out[len(out)-1] = merged
				continue
			}
			out = append(out, NewText(child.Text))
			continue
		}
		out = append(out, child)
	}
	return out
}
