package commands

import (
	"context"
	"log/slog"

	mcp "github.com/localrivet/gomcp/server"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/backup"
	"github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/internal/extract"
	"github.com/thoreinstein/holster/internal/registry"
	"github.com/thoreinstein/holster/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run holster as an MCP server over stdio",
	Long: `Expose holster's operations as MCP tools over standard I/O.

Register this command itself as an MCP server and the client can manage
its own server list: create, list, enable, disable, and delete entries,
and scan the local disk for unregistered server projects.

Stdout carries the protocol, so all logging goes to --log-file (or is
discarded).`,
	Example: `  # Typical client registration
  { "mcpServers": { "holster": { "command": "holster", "args": ["serve"] } } }`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	logger := commandLogger(cmd.Context())

	reg, err := openRegistry(logger)
	if err != nil {
		return err
	}

	srv := mcp.NewServer("holster").AsStdio(logFile)
	registerTools(srv, reg, logger)

	logger.Info("starting MCP server", "store", resolveStorePath())
	return srv.Run()
}

// toolCanceler is the cancellation surface of an MCP tool request. The
// request type does not implement context.Context, so the bridge below
// only asks for its done channel.
type toolCanceler interface {
	Done() <-chan struct{}
}

// toolScanContext derives the scan deadline context from a tool request so
// that client-side cancellation reaches a running scan.
func toolScanContext(tool toolCanceler) (context.Context, context.CancelFunc) {
	parent, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-tool.Done():
			cancel()
		case <-parent.Done():
		}
	}()

	scanCtx, cancelScan := scanContext(parent, 0)
	return scanCtx, func() {
		cancelScan()
		cancel()
	}
}

// serverJSON is the wire shape of one registered server.
type serverJSON struct {
	Name    string   `json:"name"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

func toServerJSON(s *server.Server) serverJSON {
	args := s.Args
	if args == nil {
		args = []string{}
	}
	return serverJSON{Name: s.Name, Command: s.Command, Args: args}
}

func bucketJSON(servers map[string]*server.Server) map[string]serverJSON {
	out := make(map[string]serverJSON, len(servers))
	for name, s := range servers {
		out[name] = toServerJSON(s)
	}
	return out
}

// registerTools wires every holster operation onto the MCP server.
func registerTools(srv mcp.Server, reg *registry.Registry, logger *slog.Logger) {
	srv.Tool("ping", "Check that the holster server is responding",
		func(ctx *mcp.Context, args struct{}) (any, error) {
			return "pong", nil
		})

	srv.Tool("create_server", "Register a new MCP server in the active bucket",
		func(ctx *mcp.Context, args struct {
			Name      string `json:"name" description:"Unique server name"`
			Command   string `json:"command,omitempty" description:"Launch command (default uv)"`
			Directory string `json:"directory" description:"Project directory passed to the launch command"`
			Script    string `json:"script,omitempty" description:"Script to run (default server.py)"`
		}) (any, error) {
			command := args.Command
			if command == "" {
				command = extract.DefaultCommand
			}
			script := args.Script
			if script == "" {
				script = "server.py"
			}
			if err := backup.EnsureSnapshot(resolveStorePath()); err != nil {
				return nil, err
			}
			created, err := reg.CreateFromParts(args.Name, command, args.Directory, script)
			if err != nil {
				return nil, err
			}
			return toServerJSON(created), nil
		})

	srv.Tool("list_servers", "List registered servers in both buckets",
		func(ctx *mcp.Context, args struct{}) (any, error) {
			active, inactive, err := reg.List()
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"active":   bucketJSON(active),
				"inactive": bucketJSON(inactive),
			}, nil
		})

	srv.Tool("update_server_status", "Move servers between the active and inactive buckets",
		func(ctx *mcp.Context, args struct {
			Names  []string `json:"names" description:"Servers to move; all must be in the opposite bucket"`
			Active bool     `json:"active" description:"true to activate, false to deactivate"`
		}) (any, error) {
			if err := backup.EnsureSnapshot(resolveStorePath()); err != nil {
				return nil, err
			}
			if err := reg.SetStatus(args.Names, args.Active); err != nil {
				return nil, err
			}
			active, inactive, err := reg.List()
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"updated":        args.Names,
				"active_count":   len(active),
				"inactive_count": len(inactive),
			}, nil
		})

	srv.Tool("delete_servers", "Delete servers from both buckets permanently",
		func(ctx *mcp.Context, args struct {
			Names []string `json:"names" description:"Servers to delete; all must exist"`
		}) (any, error) {
			if err := backup.EnsureSnapshot(resolveStorePath()); err != nil {
				return nil, err
			}
			if err := reg.Delete(args.Names); err != nil {
				return nil, err
			}
			active, inactive, err := reg.List()
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"deleted":            args.Names,
				"remaining_active":   len(active),
				"remaining_inactive": len(inactive),
			}, nil
		})

	srv.Tool("scan_directory", "Find MCP server projects under a directory",
		func(ctx *mcp.Context, args struct {
			Path     string `json:"path" description:"Directory to scan"`
			MaxDepth int    `json:"max_depth,omitempty" description:"Levels to descend (default from config)"`
		}) (any, error) {
			maxDepth := args.MaxDepth
			if maxDepth <= 0 {
				maxDepth = currentConfig().Scan.MaxDepth
			}
			scanCtx, cancel := toolScanContext(ctx)
			defer cancel()

			dirs, err := newScanner(logger).Scan(scanCtx, args.Path, maxDepth)
			if err != nil {
				return nil, err
			}
			if dirs == nil {
				dirs = []string{}
			}
			return map[string]any{
				"servers":           dirs,
				"count":             len(dirs),
				"scanned_directory": args.Path,
			}, nil
		})

	srv.Tool("discover_common_locations", "Sweep well-known project locations for MCP servers",
		func(ctx *mcp.Context, args struct{}) (any, error) {
			scanCtx, cancel := toolScanContext(ctx)
			defer cancel()

			result, err := newDiscoverer(logger).Common(scanCtx)
			if err != nil {
				return nil, err
			}
			return result, nil
		})

	srv.Tool("list_potential_servers", "Cheap presence-only sweep of common locations",
		func(ctx *mcp.Context, args struct{}) (any, error) {
			scanCtx, cancel := toolScanContext(ctx)
			defer cancel()

			result, err := newDiscoverer(logger).Potential(scanCtx)
			if err != nil {
				return nil, err
			}
			directories := make([]string, 0, result.Total())
			for _, dirs := range result.Locations {
				directories = append(directories, dirs...)
			}
			return map[string]any{
				"locations":   result.Locations,
				"directories": directories,
				"summary":     result.Summary,
			}, nil
		})

	srv.Tool("scan_specific_directories", "Extract server configs from specific directories",
		func(ctx *mcp.Context, args struct {
			Paths []string `json:"paths" description:"Directories to inspect"`
		}) (any, error) {
			if len(args.Paths) == 0 {
				return nil, errors.NewUserError(nil, "provide at least one path")
			}
			scanCtx, cancel := toolScanContext(ctx)
			defer cancel()

			descriptors, err := newExtractor(logger).ScanSpecific(scanCtx, args.Paths)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"servers": descriptors,
				"count":   len(descriptors),
			}, nil
		})
}
