package commands

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage registered MCP servers",
	Long: `Manage the MCP servers registered in the managed config file.

Servers live in one of two buckets: active servers are loaded by the MCP
client, inactive servers are parked in the holster but keep their full
configuration. Moving a server between buckets never loses its command,
arguments, or any other fields the client wrote.`,
	Example: `  # Register a uv-launched server
  holster server add weather --directory ~/Projects/weather --script server.py

  # Register an arbitrary command
  holster server add github npx -y @modelcontextprotocol/server-github

  # List both buckets
  holster server list

  # Park and restore
  holster server disable weather
  holster server enable weather

  # Delete for good
  holster server remove weather`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
