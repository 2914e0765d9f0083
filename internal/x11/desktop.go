package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// sourcePager marks client messages as coming from a pager so window
// managers apply them without focus-stealing checks.
const sourcePager = 2

// CurrentDesktop returns _NET_CURRENT_DESKTOP.
func (c *Connection) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// SetWindowDesktop asks the window manager to move a window to a desktop.
// The message is built by hand; ewmh.WmDesktopReq panics on a type
// assertion in the xgbutil release we depend on.
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	return c.sendRootMessage(windowID, "_NET_WM_DESKTOP", uint32(desktop), sourcePager)
}

// FocusWindow activates a window through _NET_ACTIVE_WINDOW.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	return c.sendRootMessage(windowID, "_NET_ACTIVE_WINDOW", sourcePager, 0)
}

func (c *Connection) sendRootMessage(windowID xproto.Window, atom string, d0, d1 uint32) error {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(atom)), atom).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atom, err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   reply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{d0, d1, 0, 0, 0}),
	}
	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
