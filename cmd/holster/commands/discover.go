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

// Package-level flag variables for the discover command.
var (
	discoverPotential bool
	discoverTimeout   time.Duration
	discoverJSON      bool
)

func init() {
	discoverCmd.Flags().BoolVar(&discoverPotential, "potential", false,
		"cheap presence-only sweep instead of reading file contents")
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 0,
		"abort the sweep after this duration (default from config)")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Sweep common locations for MCP server projects",
	Long: `Sweep the usual project locations for MCP server projects.

The sweep covers well-known directories (~/mcp-servers, ~/Projects,
~/Developer, ~/src, ~/code and friends) plus visible directories directly
under your home. Locations that do not exist or cannot be read are
skipped. The set of locations can be overridden in the config file.

With --potential, only file presence is checked. Faster, noisier.

Examples:
  holster discover
  holster discover --potential
  holster discover --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDiscover(cmd, os.Stdout)
	},
}

func runDiscover(cmd *cobra.Command, w io.Writer) error {
	d := newDiscoverer(commandLogger(cmd.Context()))

	ctx, cancel := scanContext(cmd.Context(), discoverTimeout)
	defer cancel()

	sweep := d.Common
	if discoverPotential {
		sweep = d.Potential
	}

	result, err := sweep(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrScanTimeout) || ctx.Err() != nil {
			return errors.NewSystemError(err, "raise --timeout or trim scan.locations in config")
		}
		return err
	}

	if discoverJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	locations := make([]string, 0, len(result.Locations))
	for loc := range result.Locations {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	for _, loc := range locations {
		dirs := result.Locations[loc]
		if len(dirs) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, loc, colorReset)
		for _, dir := range dirs {
			fmt.Fprintf(w, "  %s%s%s\n", colorGreen, dir, colorReset)
		}
	}

	fmt.Fprintln(w, result.Summary)
	return nil
}
