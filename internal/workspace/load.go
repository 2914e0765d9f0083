package workspace

import (
	"fmt"
	"strings"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/ldl"
)

// LoadResult describes a committed load.
type LoadResult struct {
	Tag      string
	Root     frame.Frame
	Warnings []string
	// Brought lists windows that were moved here from other tags.
	Brought []frame.WindowID
	// Orphans lists windows of this tag that sat in replaced frames without
	// being named; they were appended to the focused frame.
	Orphans []frame.WindowID
}

// LoadText parses layout with the manager's fraction bounds and loads it
// into the tag. Parse failures are returned as *ldl.SyntaxError before
// anything is touched.
func (m *Manager) LoadText(tagName, layout string) (*LoadResult, error) {
	node, err := ldl.Parse(layout, ldl.WithBounds(m.Options().Bounds))
	if err != nil {
		return nil, err
	}
	return m.Load(tagName, node)
}

// Load merges a parsed layout into the tag's current tree. Parts the layout
// leaves out keep what the live tree has at the same position. Named windows
// are brought to this tag; unknown ones are skipped with a warning.
//
// The new tree and every affected source tag are computed and validated
// before any of them is swapped in.
func (m *Manager) Load(tagName string, node ldl.Node) (*LoadResult, error) {
	if node == nil {
		return nil, fmt.Errorf("empty layout")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ldl.CheckFractions(node, m.opts.Bounds); err != nil {
		return nil, err
	}
	target, err := m.resolveLocked(tagName)
	if err != nil {
		return nil, err
	}

	r := &reconciler{
		fill:     m.opts.DefaultAlgorithm,
		known:    m.windows,
		resolved: make(map[*ldl.ClientsNode][]frame.WindowID),
		claimed:  make(map[frame.WindowID]bool),
	}
	r.resolve(node)

	root := r.merge(node, target.root)

	placed := make(map[frame.WindowID]bool)
	for _, id := range frame.Windows(root) {
		placed[id] = true
	}
	var orphans []frame.WindowID
	for _, id := range frame.Windows(target.root) {
		if !placed[id] {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		root = frame.AppendToFocused(root, orphans...)
	}

	// Splits kept from the live tree may predate the current bounds.
	if err := frame.Validate(root, frame.OpenBounds()); err != nil {
		return nil, fmt.Errorf("load produced an invalid tree: %w", err)
	}

	// Pull brought windows out of the tags they came from.
	var brought []frame.WindowID
	drops := make(map[string]map[frame.WindowID]bool)
	for _, id := range r.order {
		from := m.windows[id]
		if from == target.name {
			continue
		}
		brought = append(brought, id)
		if drops[from] == nil {
			drops[from] = make(map[frame.WindowID]bool)
		}
		drops[from][id] = true
	}
	sources := make(map[*tag]frame.Frame, len(drops))
	for name, drop := range drops {
		src := m.findLocked(name)
		if src == nil {
			return nil, fmt.Errorf("window registry refers to missing tag %q", name)
		}
		rebuilt := frame.Remove(src.root, drop)
		if err := frame.Validate(rebuilt, frame.OpenBounds()); err != nil {
			return nil, fmt.Errorf("load produced an invalid tree for tag %q: %w", name, err)
		}
		sources[src] = rebuilt
	}

	// Commit.
	for src, rebuilt := range sources {
		src.root = rebuilt
	}
	target.root = root
	for _, id := range brought {
		m.windows[id] = target.name
	}

	res := &LoadResult{
		Tag:     target.name,
		Root:    frame.Clone(root),
		Brought: brought,
		Orphans: orphans,
	}
	if len(r.unknown) > 0 {
		ids := make([]string, len(r.unknown))
		for i, id := range r.unknown {
			ids[i] = id.String()
		}
		res.Warnings = append(res.Warnings, "Warning: Unknown window IDs: "+strings.Join(ids, ", "))
	}
	return res, nil
}

// reconciler walks a layout and the live tree in lock-step.
type reconciler struct {
	fill     frame.Algorithm
	known    map[frame.WindowID]string
	resolved map[*ldl.ClientsNode][]frame.WindowID
	claimed  map[frame.WindowID]bool
	order    []frame.WindowID
	unknown  []frame.WindowID
}

// resolve decides, before any tree is built, which named windows each
// clients node receives. The first mention of a window wins.
func (r *reconciler) resolve(n ldl.Node) {
	switch v := n.(type) {
	case *ldl.ClientsNode:
		if v.Windows == nil {
			return
		}
		ids := make([]frame.WindowID, 0, len(v.Windows))
		for _, id := range v.Windows {
			if _, ok := r.known[id]; !ok {
				if !containsID(r.unknown, id) {
					r.unknown = append(r.unknown, id)
				}
				continue
			}
			if r.claimed[id] {
				continue
			}
			r.claimed[id] = true
			r.order = append(r.order, id)
			ids = append(ids, id)
		}
		r.resolved[v] = ids
	case *ldl.SplitNode:
		r.resolve(v.Children[0])
		r.resolve(v.Children[1])
	}
}

// merge builds the new frame for one position. live may be nil when the
// live tree is shallower than the layout.
func (r *reconciler) merge(n ldl.Node, live frame.Frame) frame.Frame {
	switch v := n.(type) {
	case nil:
		if live == nil {
			return frame.EmptyLeaf(r.fill)
		}
		return frame.Remove(live, r.claimed)
	case *ldl.ClientsNode:
		leaf := &frame.Leaf{Algorithm: v.Algorithm, Selected: v.Selected}
		if ids, named := r.resolved[v]; named {
			leaf.Windows = ids
		} else if live != nil {
			for _, id := range frame.Windows(live) {
				if !r.claimed[id] {
					leaf.Windows = append(leaf.Windows, id)
				}
			}
		}
		if leaf.Selected >= len(leaf.Windows) {
			leaf.Selected = max(len(leaf.Windows)-1, 0)
		}
		return leaf
	case *ldl.SplitNode:
		var liveChildren [2]frame.Frame
		if s, ok := live.(*frame.Split); ok {
			liveChildren = s.Children
		}
		return &frame.Split{
			Alignment: v.Alignment,
			Fraction:  v.Fraction,
			Selected:  v.Selected,
			Children: [2]frame.Frame{
				r.merge(v.Children[0], liveChildren[0]),
				r.merge(v.Children[1], liveChildren[1]),
			},
		}
	}
	panic(fmt.Sprintf("workspace: unexpected layout node %T", n))
}

func containsID(ids []frame.WindowID, id frame.WindowID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
