package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/noa/codebase"
)

func (a *app) newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(a.fs, version)
			return server.RunStdio()
		},
	}
}
