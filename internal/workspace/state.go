// Package workspace owns the tags, their frame trees and the registry of
// managed windows. All access goes through Manager, which serialises
// commands so no caller ever observes a half-updated tree.
package workspace

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/1broseidon/frametile/internal/frame"
)

// DefaultTag is created when no tags are configured.
const DefaultTag = "default"

var (
	ErrUnknownTag    = errors.New("unknown tag")
	ErrTagExists     = errors.New("tag already exists")
	ErrUnknownWindow = errors.New("unknown window")
	ErrWindowExists  = errors.New("window already managed")
)

// Options control how trees are built and validated.
type Options struct {
	Bounds           frame.Bounds
	DefaultAlgorithm frame.Algorithm
	MaxTags          int // 0 = unlimited
}

// DefaultOptions returns the built-in fraction bounds and the vertical
// algorithm for fresh frames.
func DefaultOptions() Options {
	return Options{
		Bounds:           frame.DefaultBounds(),
		DefaultAlgorithm: frame.AlgorithmVertical,
	}
}

type tag struct {
	name string
	root frame.Frame
}

// TagInfo summarises one tag.
type TagInfo struct {
	Name        string `json:"name"`
	Index       int    `json:"index"`
	Focused     bool   `json:"focused"`
	ClientCount int    `json:"client_count"`
	FrameCount  int    `json:"frame_count"`
}

// WindowInfo locates one managed window.
type WindowInfo struct {
	ID      frame.WindowID `json:"id"`
	Tag     string         `json:"tag"`
	Focused bool           `json:"focused"`
}

// Manager is the tag and window registry.
type Manager struct {
	mu      sync.RWMutex
	opts    Options
	tags    []*tag
	focused int
	windows map[frame.WindowID]string // window -> tag name
}

// NewManager creates a manager with the given tags, focusing the first one.
// Without names a single DefaultTag is created.
func NewManager(opts Options, names ...string) (*Manager, error) {
	if err := opts.Bounds.Validate(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = []string{DefaultTag}
	}
	m := &Manager{
		opts:    opts,
		windows: make(map[frame.WindowID]string),
	}
	for _, name := range names {
		if err := m.addTagLocked(name); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Options returns the active options.
func (m *Manager) Options() Options {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opts
}

// SetOptions replaces the options used for subsequent commands. Stored
// trees keep their fractions; new bounds apply to layouts loaded later.
func (m *Manager) SetOptions(opts Options) error {
	if err := opts.Bounds.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = opts
	return nil
}

// AddTag creates an empty tag.
func (m *Manager) AddTag(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addTagLocked(name)
}

func (m *Manager) addTagLocked(name string) error {
	if name == "" {
		return fmt.Errorf("tag name must not be empty")
	}
	if m.findLocked(name) != nil {
		return fmt.Errorf("%w: %q", ErrTagExists, name)
	}
	if err := checkCanAddTag(len(m.tags), m.opts.MaxTags); err != nil {
		return err
	}
	m.tags = append(m.tags, &tag{name: name, root: frame.EmptyLeaf(m.opts.DefaultAlgorithm)})
	return nil
}

// Tags lists all tags in creation order.
func (m *Manager) Tags() []TagInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]TagInfo, 0, len(m.tags))
	for i, t := range m.tags {
		out = append(out, TagInfo{
			Name:        t.name,
			Index:       i,
			Focused:     i == m.focused,
			ClientCount: len(frame.Windows(t.root)),
			FrameCount:  frame.Count(t.root),
		})
	}
	return out
}

// FocusedTag returns the name of the focused tag.
func (m *Manager) FocusedTag() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tags[m.focused].name
}

// FocusTag makes name the focused tag.
func (m *Manager) FocusTag(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tags {
		if t.name == name {
			m.focused = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// Tree returns a copy of the tag's frame tree. An empty name means the
// focused tag.
func (m *Manager) Tree(name string) (frame.Frame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, err := m.resolveLocked(name)
	if err != nil {
		return nil, err
	}
	return frame.Clone(t.root), nil
}

// ClientCount returns the number of windows on the tag.
func (m *Manager) ClientCount(name string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, err := m.resolveLocked(name)
	if err != nil {
		return 0, err
	}
	return len(frame.Windows(t.root)), nil
}

// AddWindow starts managing id and places it in the focused frame of the
// focused tag.
func (m *Manager) AddWindow(id frame.WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[id]; ok {
		return fmt.Errorf("%w: %s", ErrWindowExists, id)
	}
	t := m.tags[m.focused]
	root := frame.AppendToFocused(t.root, id)
	if err := frame.Validate(root, frame.OpenBounds()); err != nil {
		return err
	}
	t.root = root
	m.windows[id] = t.name
	return nil
}

// RemoveWindow stops managing id.
func (m *Manager) RemoveWindow(id frame.WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	if t := m.findLocked(name); t != nil && frame.Contains(t.root, id) {
		t.root = frame.Remove(t.root, map[frame.WindowID]bool{id: true})
	}
	delete(m.windows, id)
	return nil
}

// Exists reports whether id is managed.
func (m *Manager) Exists(id frame.WindowID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.windows[id]
	return ok
}

// TagOf returns the tag holding id.
func (m *Manager) TagOf(id frame.WindowID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.windows[id]
	return name, ok
}

// Windows lists managed windows sorted by id.
func (m *Manager) Windows() []WindowInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	focusedByTag := make(map[string]frame.WindowID, len(m.tags))
	for _, t := range m.tags {
		if id, ok := frame.FocusedWindow(t.root); ok {
			focusedByTag[t.name] = id
		}
	}

	out := make([]WindowInfo, 0, len(m.windows))
	for id, name := range m.windows {
		fw, ok := focusedByTag[name]
		out = append(out, WindowInfo{ID: id, Tag: name, Focused: ok && fw == id})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// FocusedWindow returns the selected window of the focused tag.
func (m *Manager) FocusedWindow() (frame.WindowID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return frame.FocusedWindow(m.tags[m.focused].root)
}

// Snapshot is a consistent copy of every tag tree taken under one lock.
type Snapshot struct {
	Tags    []TagTree
	Focused int // index into Tags
}

// TagTree is one tag's tree inside a Snapshot.
type TagTree struct {
	Name string
	Root frame.Frame
}

// FocusedRoot returns the tree of the focused tag.
func (s Snapshot) FocusedRoot() frame.Frame {
	return s.Tags[s.Focused].Root
}

// Snapshot copies all trees at once.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := Snapshot{Tags: make([]TagTree, len(m.tags)), Focused: m.focused}
	for i, t := range m.tags {
		out.Tags[i] = TagTree{Name: t.name, Root: frame.Clone(t.root)}
	}
	return out
}

func (m *Manager) resolveLocked(name string) (*tag, error) {
	if name == "" {
		return m.tags[m.focused], nil
	}
	if t := m.findLocked(name); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

func (m *Manager) findLocked(name string) *tag {
	for _, t := range m.tags {
		if t.name == name {
			return t
		}
	}
	return nil
}
