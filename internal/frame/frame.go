// Package frame models the per-tag frame tree: splits that divide space in
// two and leaves that arrange a list of windows.
//
// Frame is a closed sum type. The only implementations are *Leaf and *Split,
// and every consumer switches over both.
package frame

import (
	"fmt"
)

// WindowID identifies a live window in the window registry.
type WindowID uint32

func (id WindowID) String() string {
	return fmt.Sprintf("0x%x", uint32(id))
}

// Algorithm arranges the windows of a leaf.
type Algorithm int

const (
	AlgorithmVertical Algorithm = iota
	AlgorithmHorizontal
	AlgorithmMax
	AlgorithmGrid
)

var algorithmNames = [...]string{
	AlgorithmVertical:   "vertical",
	AlgorithmHorizontal: "horizontal",
	AlgorithmMax:        "max",
	AlgorithmGrid:       "grid",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// Valid reports whether a is one of the known algorithms.
func (a Algorithm) Valid() bool {
	return a >= 0 && int(a) < len(algorithmNames)
}

// ParseAlgorithm maps an algorithm name to its value.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", name)
}

// Alignment is the axis a split divides along.
type Alignment int

const (
	AlignmentVertical Alignment = iota
	AlignmentHorizontal
)

func (a Alignment) String() string {
	switch a {
	case AlignmentVertical:
		return "vertical"
	case AlignmentHorizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// Valid reports whether a is one of the known alignments.
func (a Alignment) Valid() bool {
	return a == AlignmentVertical || a == AlignmentHorizontal
}

// ParseAlignment maps an alignment name to its value.
func ParseAlignment(name string) (Alignment, error) {
	switch name {
	case "vertical":
		return AlignmentVertical, nil
	case "horizontal":
		return AlignmentHorizontal, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", name)
}

// Frame is either a *Leaf or a *Split.
type Frame interface {
	isFrame()
}

// Leaf holds an ordered list of windows arranged by Algorithm. Selected
// indexes Windows, or is 0 when the leaf is empty.
type Leaf struct {
	Windows   []WindowID
	Algorithm Algorithm
	Selected  int
}

// Split divides its area between exactly two children. Fraction is the share
// given to Children[0]; Selected is 0 or 1.
type Split struct {
	Alignment Alignment
	Fraction  float64
	Selected  int
	Children  [2]Frame
}

func (*Leaf) isFrame()  {}
func (*Split) isFrame() {}

// NewLeaf builds a validated leaf. The windows slice is copied.
func NewLeaf(algorithm Algorithm, selected int, windows []WindowID) (*Leaf, error) {
	l := &Leaf{
		Windows:   append([]WindowID(nil), windows...),
		Algorithm: algorithm,
		Selected:  selected,
	}
	if err := l.check(); err != nil {
		return nil, err
	}
	return l, nil
}

// EmptyLeaf returns a leaf without windows.
func EmptyLeaf(algorithm Algorithm) *Leaf {
	return &Leaf{Algorithm: algorithm}
}

// NewSplit builds a validated split. Both children must be non-nil.
func NewSplit(b Bounds, alignment Alignment, fraction float64, selected int, first, second Frame) (*Split, error) {
	s := &Split{
		Alignment: alignment,
		Fraction:  fraction,
		Selected:  selected,
		Children:  [2]Frame{first, second},
	}
	if first == nil || second == nil {
		return nil, fmt.Errorf("split needs two children")
	}
	if err := s.check(b); err != nil {
		return nil, err
	}
	return s, nil
}

func (l *Leaf) check() error {
	if !l.Algorithm.Valid() {
		return fmt.Errorf("invalid algorithm %d", int(l.Algorithm))
	}
	if len(l.Windows) == 0 {
		if l.Selected != 0 {
			return fmt.Errorf("selection %d on empty frame must be 0", l.Selected)
		}
		return nil
	}
	if l.Selected < 0 || l.Selected >= len(l.Windows) {
		return fmt.Errorf("selection %d out of range [0, %d)", l.Selected, len(l.Windows))
	}
	return nil
}

func (s *Split) check(b Bounds) error {
	if !s.Alignment.Valid() {
		return fmt.Errorf("invalid alignment %d", int(s.Alignment))
	}
	if err := b.CheckFraction(s.Fraction); err != nil {
		return err
	}
	if s.Selected != 0 && s.Selected != 1 {
		return fmt.Errorf("split selection %d must be 0 or 1", s.Selected)
	}
	return nil
}
