package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/errors"
)

// Package-level flag variables for the scan command.
var (
	scanMaxDepth   int
	scanTimeout    time.Duration
	scanCandidates bool
	scanJSON       bool
)

func init() {
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 0,
		"levels to descend below the root's first subdirectories (default from config)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0,
		"abort the scan after this duration (default from config)")
	scanCmd.Flags().BoolVar(&scanCandidates, "candidates", false,
		"cheap presence-only check instead of reading file contents")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Find MCP server projects under a directory",
	Long: `Walk a directory tree looking for MCP server projects.

A directory counts as a server project when its Python sources import an
MCP server framework and register tools, or when its manifest declares an
mcp dependency. Once a directory matches, nothing beneath it is scanned.

With --candidates, only file presence is checked (Python sources, a
manifest, or a src/ layout). That is much faster but has a higher
false-positive rate; use it as a pre-filter.

Examples:
  # Scan a projects directory two levels deep
  holster scan ~/Projects

  # Deeper scan with a tighter deadline
  holster scan ~/code --max-depth 4 --timeout 10s

  # Fast pre-filter
  holster scan ~/Projects --candidates`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		return runScan(cmd, root, os.Stdout)
	},
}

func runScan(cmd *cobra.Command, root string, w io.Writer) error {
	logger := commandLogger(cmd.Context())
	scanner := newScanner(logger)

	maxDepth := scanMaxDepth
	if maxDepth <= 0 {
		maxDepth = currentConfig().Scan.MaxDepth
	}

	ctx, cancel := scanContext(cmd.Context(), scanTimeout)
	defer cancel()

	scanFn := scanner.Scan
	if scanCandidates {
		scanFn = scanner.ListCandidates
	}

	dirs, err := scanFn(ctx, root, maxDepth)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrScanTimeout):
			return errors.NewSystemError(err,
				"raise --timeout or lower --max-depth")
		case errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err,
				fmt.Sprintf("check that %q exists and is a directory", root))
		}
		return err
	}

	if scanJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"servers":           dirs,
			"count":             len(dirs),
			"scanned_directory": root,
		})
	}

	if len(dirs) == 0 {
		fmt.Fprintf(w, "No server projects found under %s\n", root)
		return nil
	}

	fmt.Fprintf(w, "%sFound %d server project(s) under %s%s\n",
		colorCyan+colorBold, len(dirs), root, colorReset)
	for _, dir := range dirs {
		fmt.Fprintf(w, "  %s%s%s\n", colorGreen, dir, colorReset)
	}
	return nil
}
