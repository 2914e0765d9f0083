package tiling

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/workspace"
)

// Settings are the geometry knobs read from config.
type Settings struct {
	GapSize       int
	ScreenPadding Padding
}

// Tiler pushes the manager's frame trees to the window system. Each tag
// maps to the desktop with the same index; only the focused tag is laid
// out on the active display.
type Tiler struct {
	mu       sync.Mutex
	backend  platform.Backend
	manager  *workspace.Manager
	settings Settings
	logger   *log.Logger
}

// NewTiler creates a tiler. A nil logger discards output.
func NewTiler(backend platform.Backend, manager *workspace.Manager, settings Settings, logger *log.Logger) *Tiler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tiler{
		backend:  backend,
		manager:  manager,
		settings: settings,
		logger:   logger.WithPrefix("tiler"),
	}
}

// UpdateSettings swaps the geometry settings after a config reload.
func (t *Tiler) UpdateSettings(s Settings) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settings = s
}

// Plan computes the placements for the focused tag without applying them.
func (t *Tiler) Plan() ([]Placement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.planLocked(t.manager.Snapshot().FocusedRoot())
}

func (t *Tiler) planLocked(root frame.Frame) ([]Placement, error) {
	display, err := t.backend.ActiveDisplay()
	if err != nil {
		return nil, err
	}
	area, err := ApplyPadding(display.Bounds, t.settings.ScreenPadding)
	if err != nil {
		return nil, err
	}
	return Arrange(root, area, t.settings.GapSize), nil
}

// Apply moves every managed window to its tag's desktop, lays out the
// focused tag and focuses its selected window. Failures on single windows
// are logged and skipped, then returned joined after the pass.
func (t *Tiler) Apply() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.manager.Snapshot()

	var errs []error
	for i, tag := range snap.Tags {
		for _, id := range frame.Windows(tag.Root) {
			if err := t.backend.SetDesktop(id, i); err != nil {
				t.logger.Debug("set desktop failed", "window", id, "tag", tag.Name, "error", err)
				errs = append(errs, err)
			}
		}
	}

	root := snap.FocusedRoot()
	placements, err := t.planLocked(root)
	if err != nil {
		t.logger.Warn("layout failed", "error", err)
		return err
	}
	for _, p := range placements {
		if err := t.backend.MoveResize(p.Window, p.Bounds); err != nil {
			t.logger.Debug("move/resize failed", "window", p.Window, "error", err)
			errs = append(errs, err)
		}
	}
	t.logger.Debug("tiled", "tag", snap.Tags[snap.Focused].Name, "windows", len(placements))

	if id, ok := frame.FocusedWindow(root); ok {
		if err := t.backend.Focus(id); err != nil {
			t.logger.Debug("focus failed", "window", id, "error", err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
