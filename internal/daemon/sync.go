// Package daemon keeps the tag registry in step with the windows the
// window manager actually has.
package daemon

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/workspace"
)

// DefaultInterval is used when SyncConfig.Interval is not positive.
const DefaultInterval = 2 * time.Second

// WindowLister returns the current client windows.
type WindowLister func() ([]platform.Window, error)

// Retiler is called after a pass changed the registry.
type Retiler func() error

// SyncConfig holds configuration for the syncer.
type SyncConfig struct {
	Interval time.Duration
	Logger   *log.Logger
}

// SyncResult reports what one pass changed.
type SyncResult struct {
	Added   []frame.WindowID
	Removed []frame.WindowID
}

// Changed reports whether the pass touched the registry.
func (r SyncResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Syncer periodically adopts new windows into the focused frame and drops
// windows that have disappeared.
type Syncer struct {
	interval    time.Duration
	manager     *workspace.Manager
	listWindows WindowLister
	retile      Retiler
	logger      *log.Logger
}

// NewSyncer creates a syncer. retile may be nil.
func NewSyncer(cfg SyncConfig, manager *workspace.Manager, listWindows WindowLister, retile Retiler) *Syncer {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Syncer{
		interval:    interval,
		manager:     manager,
		listWindows: listWindows,
		retile:      retile,
		logger:      logger.WithPrefix("sync"),
	}
}

// Run syncs once immediately and then on every tick. Blocks until ctx is
// cancelled.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("started", "interval", s.interval)
	s.SyncNow()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopped")
			return
		case <-ticker.C:
			s.SyncNow()
		}
	}
}

// SyncNow performs a single pass and retiles when something changed.
func (s *Syncer) SyncNow() SyncResult {
	defer func() {
		if err := recover(); err != nil {
			s.logger.Error("panic recovered", "error", err)
		}
	}()

	res, err := s.sync()
	if err != nil {
		s.logger.Error("failed to list windows", "error", err)
		return res
	}
	if !res.Changed() {
		return res
	}

	s.logger.Debug("registry changed", "added", len(res.Added), "removed", len(res.Removed))
	if s.retile != nil {
		if err := s.retile(); err != nil {
			s.logger.Warn("retile failed", "error", err)
		}
	}
	return res
}

func (s *Syncer) sync() (SyncResult, error) {
	var res SyncResult

	windows, err := s.listWindows()
	if err != nil {
		return res, err
	}

	live := make(map[frame.WindowID]bool, len(windows))
	for _, w := range windows {
		live[w.ID] = true
		if s.manager.Exists(w.ID) {
			continue
		}
		if err := s.manager.AddWindow(w.ID); err != nil {
			s.logger.Warn("failed to adopt window", "window", w.ID, "error", err)
			continue
		}
		s.logger.Info("adopted window", "window", w.ID, "class", w.Class)
		res.Added = append(res.Added, w.ID)
	}

	for _, info := range s.manager.Windows() {
		if live[info.ID] {
			continue
		}
		if err := s.manager.RemoveWindow(info.ID); err != nil {
			s.logger.Debug("window already released", "window", info.ID, "error", err)
			continue
		}
		s.logger.Info("window gone", "window", info.ID, "tag", info.Tag)
		res.Removed = append(res.Removed, info.ID)
	}
	return res, nil
}
