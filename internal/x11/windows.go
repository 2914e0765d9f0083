package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

var rejectedWindowTypes = map[string]bool{
	"_NET_WM_WINDOW_TYPE_DESKTOP":      true,
	"_NET_WM_WINDOW_TYPE_DOCK":         true,
	"_NET_WM_WINDOW_TYPE_SPLASH":       true,
	"_NET_WM_WINDOW_TYPE_NOTIFICATION": true,
	"_NET_WM_WINDOW_TYPE_TOOLBAR":      true,
	"_NET_WM_WINDOW_TYPE_MENU":         true,
}

// ClientWindows returns the managed windows from _NET_CLIENT_LIST that
// look like normal application windows, in stacking-independent order.
func (c *Connection) ClientWindows() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}
	out := make([]xproto.Window, 0, len(clients))
	for _, w := range clients {
		if c.IsNormalWindow(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// IsNormalWindow reports whether a window should be tiled.
// Windows without a type hint count as normal.
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return true
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" || t == "_NET_WM_WINDOW_TYPE_DIALOG" {
			return true
		}
		if rejectedWindowTypes[t] {
			return false
		}
	}
	return len(types) == 0
}

// MoveResizeWindow places a window, clearing any maximized state first so
// the window manager honours the request.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	c.unmaximize(windowID)

	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

func (c *Connection) unmaximize(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_FULLSCREEN":
			_ = ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
}

// ActiveWindow returns _NET_ACTIVE_WINDOW, or 0 when nothing is focused.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
