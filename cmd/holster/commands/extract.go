package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/errors"
)

// Package-level flag variables for the extract command.
var (
	extractAdd     bool
	extractTimeout time.Duration
	extractJSON    bool
)

func init() {
	extractCmd.Flags().BoolVar(&extractAdd, "add", false,
		"register every extracted server in the active bucket")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 0,
		"abort after this duration (default from config)")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <directory>...",
	Short: "Extract server configs from project documentation",
	Long: `Inspect specific directories and extract registrable server configs.

Each directory is first checked for server-like content; matches are
resolved to their project root (src/ layouts collapse to the project
directory). The project's README is then searched for a fenced code block
containing an mcpServers entry, and the first entry of the first parsable
block becomes the suggested config. Projects without a usable README get
a uv-based default pointing at the directory.

With --add, every extracted server is registered in the active bucket
under its suggested name.

Examples:
  holster extract ~/Projects/weather
  holster extract ~/mcp-servers/* --add`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args, os.Stdout)
	},
}

func runExtract(cmd *cobra.Command, dirs []string, w io.Writer) error {
	logger := commandLogger(cmd.Context())

	ctx, cancel := scanContext(cmd.Context(), extractTimeout)
	defer cancel()

	descriptors, err := newExtractor(logger).ScanSpecific(ctx, dirs)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "check that every directory exists")
		}
		return err
	}

	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)

	if extractAdd {
		reg, err := openRegistryForWrite(logger)
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := reg.Create(descriptors[name].Server()); err != nil {
				if errors.Is(err, errors.ErrDuplicateName) {
					fmt.Fprintf(w, "Skipped %s (already registered)\n", name)
					continue
				}
				return err
			}
			fmt.Fprintf(w, "Added %s%s%s\n", colorGreen, name, colorReset)
		}
		return nil
	}

	if extractJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptors)
	}

	if len(names) == 0 {
		fmt.Fprintln(w, "No server projects found")
		return nil
	}

	for _, name := range names {
		d := descriptors[name]
		fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, name, colorReset)
		fmt.Fprintf(w, "  path:    %s\n", d.Path)
		fmt.Fprintf(w, "  command: %s\n", d.Command)
		fmt.Fprintf(w, "  args:    %v\n", d.Args)
	}
	fmt.Fprintf(w, "%d extractable server(s)\n", len(names))
	return nil
}
