package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/sdkgen/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the inspect
and generate tools. Settings come from SDKGEN_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
