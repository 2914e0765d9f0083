package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/ipc"
)

// app carries the global flags and shared helpers into subcommands.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	verbose    bool
	configPath string
	socketPath string
	logger     *log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "frametile",
		Short:         "frametile arranges windows in frame trees described by a small layout language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			a.logger = newLogger(stderr, level)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/frametile/config.yaml)")
	root.PersistentFlags().StringVar(&a.socketPath, "socket", "", "daemon socket (default $XDG_RUNTIME_DIR/frametile.sock)")

	root.AddCommand(newDaemonCmd(a))
	root.AddCommand(newLoadCmd(a))
	root.AddCommand(newDumpCmd(a))
	root.AddCommand(newLayoutCmd(a))
	root.AddCommand(newTagsCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newUseCmd(a))
	root.AddCommand(newWindowsCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newReloadCmd(a))
	root.AddCommand(newPresetCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newMCPCmd(a))

	return root
}

// newLogger creates a logger with timestamp formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func (a *app) loadConfig() (*config.LoadResult, error) {
	if a.configPath != "" {
		return config.LoadFromPath(a.configPath)
	}
	return config.LoadWithSources()
}

func (a *app) client() *ipc.Client {
	if a.socketPath != "" {
		return ipc.NewClientWithSocket(a.socketPath)
	}
	return ipc.NewClient()
}
