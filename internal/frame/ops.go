package frame

// Windows returns all windows of the tree in pre-order.
func Windows(f Frame) []WindowID {
	var out []WindowID
	walkLeaves(f, func(l *Leaf) {
		out = append(out, l.Windows...)
	})
	return out
}

// Contains reports whether id is placed anywhere in the tree.
func Contains(f Frame, id WindowID) bool {
	found := false
	walkLeaves(f, func(l *Leaf) {
		if found {
			return
		}
		for _, w := range l.Windows {
			if w == id {
				found = true
				return
			}
		}
	})
	return found
}

// Count returns the number of frames (leaves and splits) in the tree.
func Count(f Frame) int {
	switch n := f.(type) {
	case *Leaf:
		return 1
	case *Split:
		return 1 + Count(n.Children[0]) + Count(n.Children[1])
	}
	return 0
}

// Focused follows the selection indices from f down to a leaf.
func Focused(f Frame) *Leaf {
	for {
		switch n := f.(type) {
		case *Leaf:
			return n
		case *Split:
			f = n.Children[n.Selected]
		default:
			return nil
		}
	}
}

// FocusedWindow returns the selected window of the focused leaf.
func FocusedWindow(f Frame) (WindowID, bool) {
	l := Focused(f)
	if l == nil || len(l.Windows) == 0 {
		return 0, false
	}
	return l.Windows[l.Selected], true
}

// Clone returns a deep copy of f.
func Clone(f Frame) Frame {
	switch n := f.(type) {
	case *Leaf:
		return &Leaf{
			Windows:   append([]WindowID(nil), n.Windows...),
			Algorithm: n.Algorithm,
			Selected:  n.Selected,
		}
	case *Split:
		return &Split{
			Alignment: n.Alignment,
			Fraction:  n.Fraction,
			Selected:  n.Selected,
			Children:  [2]Frame{Clone(n.Children[0]), Clone(n.Children[1])},
		}
	}
	return nil
}

// Remove returns a copy of f without the windows in drop. Leaf selections
// keep pointing at the same window where possible and are clamped otherwise.
func Remove(f Frame, drop map[WindowID]bool) Frame {
	switch n := f.(type) {
	case *Leaf:
		out := &Leaf{Algorithm: n.Algorithm}
		selected := n.Selected
		for i, w := range n.Windows {
			if drop[w] {
				if i < n.Selected {
					selected--
				}
				continue
			}
			out.Windows = append(out.Windows, w)
		}
		out.Selected = clampSelection(selected, len(out.Windows))
		return out
	case *Split:
		return &Split{
			Alignment: n.Alignment,
			Fraction:  n.Fraction,
			Selected:  n.Selected,
			Children:  [2]Frame{Remove(n.Children[0], drop), Remove(n.Children[1], drop)},
		}
	}
	return nil
}

// AppendToFocused returns a copy of f with ids appended to the focused leaf.
func AppendToFocused(f Frame, ids ...WindowID) Frame {
	switch n := f.(type) {
	case *Leaf:
		out := Clone(n).(*Leaf)
		out.Windows = append(out.Windows, ids...)
		return out
	case *Split:
		out := &Split{
			Alignment: n.Alignment,
			Fraction:  n.Fraction,
			Selected:  n.Selected,
			Children:  n.Children,
		}
		for i := range out.Children {
			if i == n.Selected {
				out.Children[i] = AppendToFocused(n.Children[i], ids...)
			} else {
				out.Children[i] = Clone(n.Children[i])
			}
		}
		return out
	}
	return nil
}

func clampSelection(selected, length int) int {
	if length == 0 || selected < 0 {
		return 0
	}
	if selected >= length {
		return length - 1
	}
	return selected
}

func walkLeaves(f Frame, fn func(*Leaf)) {
	switch n := f.(type) {
	case *Leaf:
		fn(n)
	case *Split:
		walkLeaves(n.Children[0], fn)
		walkLeaves(n.Children[1], fn)
	}
}
