package frame

import (
	"strconv"
	"strings"
)

// Serialize renders f in canonical layout text:
//
//	(split ALIGN:FRACTION:SELECTED CHILD0 CHILD1)
//	(clients ALGO:SELECTED ID0 ID1 ...)
func Serialize(f Frame) string {
	var b strings.Builder
	writeFrame(&b, f)
	return b.String()
}

func writeFrame(b *strings.Builder, f Frame) {
	switch n := f.(type) {
	case *Leaf:
		b.WriteString("(clients ")
		b.WriteString(n.Algorithm.String())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(n.Selected))
		for _, w := range n.Windows {
			b.WriteByte(' ')
			b.WriteString(w.String())
		}
		b.WriteByte(')')
	case *Split:
		b.WriteString("(split ")
		b.WriteString(n.Alignment.String())
		b.WriteByte(':')
		b.WriteString(FormatFraction(n.Fraction))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(n.Selected))
		b.WriteByte(' ')
		writeFrame(b, n.Children[0])
		b.WriteByte(' ')
		writeFrame(b, n.Children[1])
		b.WriteByte(')')
	}
}

// FormatFraction renders f in the shortest decimal form that parses back to
// the same value.
func FormatFraction(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
