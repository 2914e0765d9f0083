// Package platform hides the window system behind a small interface so
// the tiler and the sync loop can run against X11 or a fake.
package platform

import "github.com/1broseidon/frametile/internal/frame"

// WindowID is the window system identifier of a client window.
type WindowID = frame.WindowID

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width < 1 || r.Height < 1
}

// Display describes a monitor and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Window is a top-level client window.
type Window struct {
	ID    WindowID
	Class string
	Title string
}

// Backend abstracts window-system operations.
type Backend interface {
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindows() ([]Window, error)
	MoveResize(id WindowID, bounds Rect) error
	SetDesktop(id WindowID, desktop int) error
	Focus(id WindowID) error
}
