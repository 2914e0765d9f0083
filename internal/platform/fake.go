package platform

import (
	"errors"
	"sync"
)

// ErrNoWindow is returned by Fake for windows it does not know.
var ErrNoWindow = errors.New("no such window")

// Fake is an in-memory Backend for tests and headless runs.
type Fake struct {
	mu       sync.Mutex
	display  Display
	windows  []Window
	active   WindowID
	Geometry map[WindowID]Rect
	Desktop  map[WindowID]int
	Focused  []WindowID
}

var _ Backend = (*Fake)(nil)

// NewFake returns a fake with a single display of the given bounds.
func NewFake(bounds Rect) *Fake {
	return &Fake{
		display:  Display{Name: "fake", Bounds: bounds},
		Geometry: make(map[WindowID]Rect),
		Desktop:  make(map[WindowID]int),
	}
}

// SetWindows replaces the client list.
func (f *Fake) SetWindows(ids ...WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = f.windows[:0]
	for _, id := range ids {
		f.windows = append(f.windows, Window{ID: id})
	}
}

// SetActive sets the window reported by ActiveWindow.
func (f *Fake) SetActive(id WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = id
}

func (f *Fake) ActiveDisplay() (Display, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.display, nil
}

func (f *Fake) ActiveWindow() (WindowID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, nil
}

func (f *Fake) ListWindows() ([]Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Window(nil), f.windows...), nil
}

func (f *Fake) MoveResize(id WindowID, bounds Rect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.knownLocked(id) {
		return ErrNoWindow
	}
	f.Geometry[id] = bounds
	return nil
}

func (f *Fake) SetDesktop(id WindowID, desktop int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.knownLocked(id) {
		return ErrNoWindow
	}
	f.Desktop[id] = desktop
	return nil
}

func (f *Fake) Focus(id WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.knownLocked(id) {
		return ErrNoWindow
	}
	f.active = id
	f.Focused = append(f.Focused, id)
	return nil
}

// Snapshot returns copies of the recorded geometry and desktops.
func (f *Fake) Snapshot() (map[WindowID]Rect, map[WindowID]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	geom := make(map[WindowID]Rect, len(f.Geometry))
	for k, v := range f.Geometry {
		geom[k] = v
	}
	desk := make(map[WindowID]int, len(f.Desktop))
	for k, v := range f.Desktop {
		desk[k] = v
	}
	return geom, desk
}

func (f *Fake) knownLocked(id WindowID) bool {
	for _, w := range f.windows {
		if w.ID == id {
			return true
		}
	}
	return false
}
