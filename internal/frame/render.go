package frame

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

type treeStyles struct {
	enumerator lipgloss.Style
	split      lipgloss.Style
	leaf       lipgloss.Style
	focused    lipgloss.Style
}

func newTreeStyles(styled bool) treeStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return treeStyles{enumerator: plain, split: plain, leaf: plain, focused: plain}
	}
	return treeStyles{
		enumerator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1),
		split:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		leaf:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		focused:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

// Render draws f as an indented tree, one frame per line. The focused path is
// highlighted when styled is set and marked with [FOCUS] on the leaf.
func Render(f Frame, styled bool) string {
	st := newTreeStyles(styled)
	switch n := f.(type) {
	case *Leaf:
		return st.focused.Render(leafLabel(n, true))
	case *Split:
		t := buildTree(n, st, true).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(st.enumerator)
		return t.String()
	}
	return ""
}

func buildTree(s *Split, st treeStyles, onFocusPath bool) *tree.Tree {
	label := splitLabel(s)
	if onFocusPath {
		label = st.focused.Render(label)
	} else {
		label = st.split.Render(label)
	}
	t := tree.Root(label)
	for i, child := range s.Children {
		focused := onFocusPath && i == s.Selected
		switch c := child.(type) {
		case *Leaf:
			text := leafLabel(c, focused)
			if focused {
				t.Child(st.focused.Render(text))
			} else {
				t.Child(st.leaf.Render(text))
			}
		case *Split:
			t.Child(buildTree(c, st, focused))
		}
	}
	return t
}

func splitLabel(s *Split) string {
	percent := math.Round(s.Fraction*1000) / 10
	return fmt.Sprintf("split %s %g%% selection=%d", s.Alignment, percent, s.Selected)
}

func leafLabel(l *Leaf, focused bool) string {
	var b strings.Builder
	b.WriteString(l.Algorithm.String())
	b.WriteByte(':')
	for i, w := range l.Windows {
		b.WriteByte(' ')
		if i == l.Selected {
			b.WriteByte('*')
		}
		b.WriteString(w.String())
	}
	if focused {
		b.WriteString(" [FOCUS]")
	}
	return b.String()
}
