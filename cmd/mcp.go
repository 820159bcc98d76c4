package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseedu/schoolpulse/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the SchoolPulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to run the assessment analyses via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol, so setup must not print to stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
