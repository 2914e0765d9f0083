package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// InvariantError reports a frame that violates the tree invariants. Path is
// the dot-separated child index sequence from the root ("" for the root).
type InvariantError struct {
	Path string
	Err  error
}

func (e *InvariantError) Error() string {
	if e == nil {
		return "<nil>"
	}
	where := e.Path
	if where == "" {
		where = "root"
	}
	return fmt.Sprintf("frame %s: %v", where, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Validate checks every node of the tree rooted at f. Windows must not appear
// twice anywhere in the tree.
func Validate(f Frame, b Bounds) error {
	seen := make(map[WindowID]struct{})
	return validate(f, b, nil, seen)
}

func validate(f Frame, b Bounds, path []int, seen map[WindowID]struct{}) error {
	switch n := f.(type) {
	case *Leaf:
		if n == nil {
			return &InvariantError{Path: joinPath(path), Err: fmt.Errorf("nil leaf")}
		}
		if err := n.check(); err != nil {
			return &InvariantError{Path: joinPath(path), Err: err}
		}
		for _, id := range n.Windows {
			if _, dup := seen[id]; dup {
				return &InvariantError{Path: joinPath(path), Err: fmt.Errorf("window %s appears twice", id)}
			}
			seen[id] = struct{}{}
		}
		return nil
	case *Split:
		if n == nil {
			return &InvariantError{Path: joinPath(path), Err: fmt.Errorf("nil split")}
		}
		if err := n.check(b); err != nil {
			return &InvariantError{Path: joinPath(path), Err: err}
		}
		for i, child := range n.Children {
			if child == nil {
				return &InvariantError{Path: joinPath(append(path, i)), Err: fmt.Errorf("missing child")}
			}
			if err := validate(child, b, append(path, i), seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return &InvariantError{Path: joinPath(path), Err: fmt.Errorf("unknown frame type %T", f)}
	}
}

func joinPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ".")
}
