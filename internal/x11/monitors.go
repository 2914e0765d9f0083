package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is one active CRTC.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Monitors lists active outputs through RandR.
func (c *Connection) Monitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// ActiveMonitor picks the monitor holding the active window, falling back
// to the one under the pointer and then the first. The result is clipped
// to the EWMH work area of the current desktop.
func (c *Connection) ActiveMonitor() (Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, errors.New("no monitors found")
	}

	active := -1
	if x, y, ok := c.activeWindowCenter(); ok {
		active = monitorAt(monitors, x, y)
	}
	if active < 0 {
		if p, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
			active = monitorAt(monitors, int(p.RootX), int(p.RootY))
		}
	}
	if active < 0 {
		active = 0
	}

	mon := monitors[active]
	c.clipToWorkArea(&mon)
	return mon, nil
}

func monitorAt(monitors []Monitor, x, y int) int {
	for i, m := range monitors {
		if m.contains(x, y) {
			return i
		}
	}
	return -1
}

func (c *Connection) activeWindowCenter() (int, int, bool) {
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil || win == 0 {
		return 0, 0, false
	}
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, false
	}
	pos, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(pos.DstX) + int(geom.Width)/2, int(pos.DstY) + int(geom.Height)/2, true
}

func (c *Connection) clipToWorkArea(mon *Monitor) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return
	}
	idx := 0
	if d, err := c.CurrentDesktop(); err == nil && d >= 0 && d < len(areas) {
		idx = d
	}
	wa := areas[idx]

	x1 := max(mon.X, int(wa.X))
	y1 := max(mon.Y, int(wa.Y))
	x2 := min(mon.X+mon.Width, int(wa.X)+int(wa.Width))
	y2 := min(mon.Y+mon.Height, int(wa.Y)+int(wa.Height))
	if x2 > x1 && y2 > y1 {
		mon.X, mon.Y = x1, y1
		mon.Width, mon.Height = x2-x1, y2-y1
	}
}
