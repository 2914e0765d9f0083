package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/daemon"
	"github.com/1broseidon/frametile/internal/ipc"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/runtimepath"
	"github.com/1broseidon/frametile/internal/tiling"
	"github.com/1broseidon/frametile/internal/workspace"
)

func newDaemonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the layout daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), a)
		},
	}
}

func runDaemon(ctx context.Context, a *app) error {
	res, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	logger := a.logger
	if !a.verbose {
		logger.SetLevel(cfg.Level())
	}
	logger.Info("configuration loaded", "files", len(res.Files), "tags", len(cfg.Tags), "gap", cfg.GapSize)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	d, err := newDaemonState(cfg, backend, logger)
	if err != nil {
		return err
	}
	d.reloadConfig = func() (*config.Config, error) {
		res, err := a.loadConfig()
		if err != nil {
			return nil, err
		}
		return res.Config, nil
	}
	d.keepLevel = a.verbose

	socket := a.socketPath
	if socket == "" {
		if socket, err = runtimepath.SocketPath(); err != nil {
			return fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}
	server, err := ipc.NewServer(ipc.ServerOptions{
		SocketPath: socket,
		Manager:    d.manager,
		Tiler:      d.tiler,
		Reload:     d.reload,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	syncer := daemon.NewSyncer(daemon.SyncConfig{
		Interval: cfg.SyncInterval,
		Logger:   logger,
	}, d.manager, backend.ListWindows, d.tiler.Apply)

	syncCtx, cancelSync := context.WithCancel(ctx)
	defer cancelSync()
	go syncer.Run(syncCtx)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	logger.Info("frametile daemon started", "focused", d.manager.FocusedTag())
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case <-hup:
			logger.Info("received SIGHUP, reloading config")
			if err := d.reload(); err != nil {
				logger.Error("config reload failed", "error", err)
			}
		}
	}
}

// daemonState is the registry and tiler of a running daemon, plus the
// config reload path shared by SIGHUP and the RELOAD command.
type daemonState struct {
	mu           sync.Mutex
	manager      *workspace.Manager
	tiler        *tiling.Tiler
	logger       *log.Logger
	keepLevel    bool
	reloadConfig func() (*config.Config, error)
}

func newDaemonState(cfg *config.Config, backend platform.Backend, logger *log.Logger) (*daemonState, error) {
	manager, err := workspace.NewManager(cfg.WorkspaceOptions(), cfg.OrderedTags()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag registry: %w", err)
	}
	return &daemonState{
		manager: manager,
		tiler:   tiling.NewTiler(backend, manager, tilerSettings(cfg), logger),
		logger:  logger,
	}, nil
}

// reload applies a fresh config. New tags are created; tags removed from
// the config are kept since they may still hold windows. The sync interval
// only changes on restart.
func (d *daemonState) reload() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reloadConfig == nil {
		return errors.New("no config source")
	}
	cfg, err := d.reloadConfig()
	if err != nil {
		return err
	}

	if err := d.manager.SetOptions(cfg.WorkspaceOptions()); err != nil {
		return err
	}
	for _, name := range cfg.OrderedTags() {
		if err := d.manager.AddTag(name); err != nil && !errors.Is(err, workspace.ErrTagExists) {
			return err
		}
	}
	d.tiler.UpdateSettings(tilerSettings(cfg))
	if !d.keepLevel {
		d.logger.SetLevel(cfg.Level())
	}

	if err := d.tiler.Apply(); err != nil {
		d.logger.Warn("retile after reload failed", "error", err)
	}
	return nil
}

func tilerSettings(cfg *config.Config) tiling.Settings {
	return tiling.Settings{
		GapSize: cfg.GapSize,
		ScreenPadding: tiling.Padding{
			Top:    cfg.ScreenPadding.Top,
			Bottom: cfg.ScreenPadding.Bottom,
			Left:   cfg.ScreenPadding.Left,
			Right:  cfg.ScreenPadding.Right,
		},
	}
}
