//go:build linux

package platform

import (
	"errors"
	"strings"

	"github.com/1broseidon/frametile/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// LinuxBackend drives an X11 window manager through EWMH.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend wraps an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, err
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}
	mon, err := conn.ActiveMonitor()
	if err != nil {
		return Display{}, err
	}
	return Display{
		ID:     mon.ID,
		Name:   mon.Name,
		Bounds: Rect{X: mon.X, Y: mon.Y, Width: mon.Width, Height: mon.Height},
	}, nil
}

func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	win, err := conn.ActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(win), nil
}

// ListWindows returns the normal, visible client windows the window
// manager reports in _NET_CLIENT_LIST.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	clients, err := conn.ClientWindows()
	if err != nil {
		return nil, err
	}
	out := make([]Window, 0, len(clients))
	for _, w := range clients {
		if b.hidden(w) {
			continue
		}
		out = append(out, Window{
			ID:    WindowID(w),
			Class: b.windowClass(w),
			Title: b.windowTitle(w),
		})
	}
	return out, nil
}

func (b *LinuxBackend) MoveResize(id WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(id), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func (b *LinuxBackend) SetDesktop(id WindowID, desktop int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetWindowDesktop(xproto.Window(id), desktop)
}

func (b *LinuxBackend) Focus(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(id))
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, errors.New("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) hidden(w xproto.Window) bool {
	states, err := ewmh.WmStateGet(b.conn.XUtil, w)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

func (b *LinuxBackend) windowClass(w xproto.Window) string {
	class, err := icccm.WmClassGet(b.conn.XUtil, w)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(class.Class)
}

func (b *LinuxBackend) windowTitle(w xproto.Window) string {
	if title, err := ewmh.WmNameGet(b.conn.XUtil, w); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	title, err := icccm.WmNameGet(b.conn.XUtil, w)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(title)
}
