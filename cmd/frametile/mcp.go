package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/frametile/internal/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve layout tools over stdio; the daemon must be running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcp.NewServer(a.client(), a.logger).Run(cmd.Context())
		},
	})
	return cmd
}
