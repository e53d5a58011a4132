package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/minijavac/java/codebase"
	"github.com/dhamidi/minijavac/java/parser"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, parser.WithMaxDepth(a.cfg.MaxDepth))
			return server.RunStdio()
		},
	}
}
