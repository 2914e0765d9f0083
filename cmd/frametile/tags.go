package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.client().ListTags()
			if err != nil {
				return err
			}
			for _, t := range data.Tags {
				mark := " "
				if t.Focused {
					mark = "*"
				}
				fmt.Fprintf(a.stdout, "%s %d %-12s %d clients, %d frames\n", mark, t.Index, t.Name, t.ClientCount, t.FrameCount)
			}
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add TAG",
		Short: "Create an empty tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client().AddTag(args[0])
		},
	}
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use TAG",
		Short: "Focus a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client().FocusTag(args[0])
		},
	}
}

func newWindowsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List managed windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.client().ListWindows()
			if err != nil {
				return err
			}
			for _, w := range data.Windows {
				line := fmt.Sprintf("%-10s %s", w.ID, w.Tag)
				if w.Focused {
					line += " (focused)"
				}
				fmt.Fprintln(a.stdout, line)
			}
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.client().GetStatus()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "focused tag: %s\n", status.FocusedTag)
			fmt.Fprintf(a.stdout, "tags:        %d\n", status.TagCount)
			fmt.Fprintf(a.stdout, "windows:     %d\n", status.WindowCount)
			fmt.Fprintf(a.stdout, "uptime:      %s\n", time.Duration(status.UptimeSeconds)*time.Second)
			return nil
		},
	}
}

func newReloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask the daemon to re-read its config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client().Reload()
		},
	}
}
