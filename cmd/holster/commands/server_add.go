package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/internal/extract"
	"github.com/thoreinstein/holster/internal/server"
)

// Package-level flag variables for server add command.
var (
	serverAddDirectory string
	serverAddScript    string
	serverAddCommand   string
)

func init() {
	serverAddCmd.Flags().StringVarP(&serverAddDirectory, "directory", "d", "",
		"project directory passed to the launch command")
	serverAddCmd.Flags().StringVarP(&serverAddScript, "script", "s", "",
		"script the launch command runs (default server.py)")
	serverAddCmd.Flags().StringVarP(&serverAddCommand, "command", "c", extract.DefaultCommand,
		"launch command used with --directory")
	serverCmd.AddCommand(serverAddCmd)
}

var serverAddCmd = &cobra.Command{
	Use:   "add <name> [command] [args...]",
	Short: "Register a new MCP server",
	Long: `Register a new MCP server in the active bucket.

There are two ways to describe how the server launches. For uv-style
projects, point --directory at the project and the launch arguments are
assembled for you:

  holster server add weather --directory ~/Projects/weather

which registers: uv --directory ~/Projects/weather run server.py

For anything else, pass the command and its arguments directly:

  holster server add github npx -y @modelcontextprotocol/server-github

The name must not collide with any server in either bucket.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerAdd(cmd, args, os.Stdout)
	},
}

func runServerAdd(cmd *cobra.Command, args []string, w io.Writer) error {
	name := args[0]

	if serverAddDirectory != "" && len(args) > 1 {
		return errors.NewUserError(nil,
			"use either --directory or an explicit command, not both")
	}

	logger := commandLogger(cmd.Context())
	reg, err := openRegistryForWrite(logger)
	if err != nil {
		return err
	}

	var srv *server.Server
	if serverAddDirectory != "" {
		script := serverAddScript
		if script == "" {
			script = "server.py"
		}
		srv, err = reg.CreateFromParts(name, serverAddCommand, serverAddDirectory, script)
	} else {
		if len(args) < 2 {
			return errors.NewUserError(nil,
				"provide a command, or use --directory for uv-style projects")
		}
		srv = server.New(name, args[1], args[2:])
		err = reg.Create(srv)
	}
	if err != nil {
		if errors.Is(err, errors.ErrDuplicateName) {
			return errors.NewUserError(err,
				fmt.Sprintf("pick a different name, or remove the existing %q first", name))
		}
		return err
	}

	fmt.Fprintf(w, "Added %s%s%s (%s)\n", colorGreen, srv.Name, colorReset, srv.Command)
	return nil
}
