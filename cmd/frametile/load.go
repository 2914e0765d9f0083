package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/ldl"
)

func newLoadCmd(a *app) *cobra.Command {
	var (
		preset string
		check  bool
	)
	cmd := &cobra.Command{
		Use:   "load [TAG] LAYOUT",
		Short: "Load a layout into a tag (default: the focused tag)",
		Long: `Load a layout into a tag. Frames the layout leaves out keep what the tag
already has; window ids it names are brought from other tags. Unknown ids
are skipped with a warning on stdout.

With --preset the layout is taken from the config's presets and the only
argument is the optional tag. With --check the layout is only parsed.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, layout, err := loadArgs(a, args, preset)
			if err != nil {
				return err
			}

			if check {
				res, err := a.loadConfig()
				if err != nil {
					return err
				}
				_, err = ldl.Parse(layout, ldl.WithBounds(res.Config.Bounds()))
				return err
			}

			data, err := a.client().Load(tag, layout)
			if err != nil {
				return err
			}
			for _, w := range data.Warnings {
				fmt.Fprintln(a.stdout, w)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "load the named preset from the config")
	cmd.Flags().BoolVar(&check, "check", false, "parse the layout without contacting the daemon")
	return cmd
}

func loadArgs(a *app, args []string, preset string) (tag, layout string, err error) {
	if preset != "" {
		if len(args) > 1 {
			return "", "", errors.New("--preset takes at most one TAG argument")
		}
		res, err := a.loadConfig()
		if err != nil {
			return "", "", err
		}
		if layout, err = res.Config.Preset(preset); err != nil {
			return "", "", err
		}
		if len(args) == 1 {
			tag = args[0]
		}
		return tag, layout, nil
	}

	switch len(args) {
	case 1:
		return "", args[0], nil
	case 2:
		return args[0], args[1], nil
	}
	return "", "", errors.New("missing LAYOUT argument")
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [TAG]",
		Short: "Print the canonical layout of a tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.client().Dump(firstArg(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, data.Layout)
			return nil
		},
	}
}

// renderBounds accepts any fraction the daemon could have stored.
var renderBounds = frame.OpenBounds()

func newLayoutCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "layout [TAG]",
		Short: "Show the frame tree of a tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.client().Dump(firstArg(args))
			if err != nil {
				return err
			}
			node, err := ldl.Parse(data.Layout, ldl.WithBounds(renderBounds))
			if err != nil {
				return fmt.Errorf("daemon returned an unreadable layout: %w", err)
			}
			root, err := ldl.ToFrame(node, renderBounds, frame.AlgorithmVertical)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s\n", data.Tag)
			fmt.Fprintln(a.stdout, frame.Render(root, !plain && isTerminal(a.stdout)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable styling")
	return cmd
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
