package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newPresetCmd(a *app) *cobra.Command {
	var pick bool
	cmd := &cobra.Command{
		Use:   "preset [TAG]",
		Short: "List layout presets, or pick one and load it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.loadConfig()
			if err != nil {
				return err
			}
			cfg := res.Config
			names := cfg.PresetNames()

			if !pick {
				for _, name := range names {
					fmt.Fprintf(a.stdout, "%-16s %s\n", name, cfg.Presets[name])
				}
				return nil
			}

			if !isTerminal(a.stdout) {
				return errors.New("--pick needs a terminal")
			}
			var choice string
			err = huh.NewSelect[string]().
				Title("Load preset").
				Options(huh.NewOptions(names...)...).
				Value(&choice).
				Run()
			if err != nil {
				return err
			}

			data, err := a.client().Load(firstArg(args), cfg.Presets[choice])
			if err != nil {
				return err
			}
			for _, w := range data.Warnings {
				fmt.Fprintln(a.stdout, w)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a preset interactively and load it")
	return cmd
}
