package ldl

import (
	"github.com/1broseidon/frametile/internal/frame"
)

// Node is a parsed layout node: *ClientsNode or *SplitNode. Unlike a frame,
// a node may leave parts unspecified; those parts are filled from the live
// tree when the layout is loaded.
type Node interface {
	isNode()
}

// ClientsNode describes a leaf. A nil Windows list means the layout did not
// name any windows for this leaf.
type ClientsNode struct {
	Algorithm frame.Algorithm
	Selected  int
	Windows   []frame.WindowID
}

// SplitNode describes a split. A nil child was omitted from the layout text.
type SplitNode struct {
	Alignment frame.Alignment
	Fraction  float64
	Selected  int
	Children  [2]Node
}

func (*ClientsNode) isNode() {}
func (*SplitNode) isNode()   {}

// Partial reports whether any part of the layout below n was omitted.
func Partial(n Node) bool {
	switch v := n.(type) {
	case *ClientsNode:
		return v.Windows == nil
	case *SplitNode:
		for _, c := range v.Children {
			if c == nil || Partial(c) {
				return true
			}
		}
	}
	return false
}

// CheckFractions checks every split fraction below n against b.
func CheckFractions(n Node, b frame.Bounds) error {
	s, ok := n.(*SplitNode)
	if !ok {
		return nil
	}
	if err := b.CheckFraction(s.Fraction); err != nil {
		return err
	}
	for _, c := range s.Children {
		if c == nil {
			continue
		}
		if err := CheckFractions(c, b); err != nil {
			return err
		}
	}
	return nil
}

// ToFrame builds a standalone frame tree from n. Omitted children become
// empty leaves using fill as their algorithm.
func ToFrame(n Node, b frame.Bounds, fill frame.Algorithm) (frame.Frame, error) {
	switch v := n.(type) {
	case nil:
		return frame.EmptyLeaf(fill), nil
	case *ClientsNode:
		return frame.NewLeaf(v.Algorithm, v.Selected, v.Windows)
	case *SplitNode:
		var children [2]frame.Frame
		for i, c := range v.Children {
			child, err := ToFrame(c, b, fill)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return frame.NewSplit(b, v.Alignment, v.Fraction, v.Selected, children[0], children[1])
	}
	return nil, nil
}
