// Package discover scans well-known locations for MCP server projects.
//
// It ties the paths, scan, and extract packages together: candidate locations
// come from a fixed list of common project directories plus the immediate
// non-hidden subdirectories of the user's home directory, and each location
// is swept with the scanner's heuristics.
package discover

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thoreinstein/holster/internal/paths"
	"github.com/thoreinstein/holster/internal/scan"
)

// Discoverer sweeps a set of locations for server-like directories.
type Discoverer struct {
	scanner   *scan.Scanner
	logger    *slog.Logger
	locations []string
	maxDepth  int
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithLocations overrides the default location list.
// Used for configuration overrides and testing.
func WithLocations(locations []string) Option {
	return func(d *Discoverer) {
		d.locations = locations
	}
}

// WithMaxDepth sets how deep each location is scanned.
func WithMaxDepth(depth int) Option {
	return func(d *Discoverer) {
		d.maxDepth = depth
	}
}

// New creates a Discoverer. Without WithLocations, the default common
// locations are resolved lazily on each sweep.
func New(scanner *scan.Scanner, logger *slog.Logger, opts ...Option) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Discoverer{
		scanner:  scanner,
		logger:   logger,
		maxDepth: scan.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result holds the outcome of one sweep.
type Result struct {
	// Locations maps each swept location to the server-like directories
	// found beneath it. Locations where nothing was found map to an empty
	// slice.
	Locations map[string][]string `json:"locations"`

	// Summary is a human-readable one-liner describing the sweep.
	Summary string `json:"summary"`
}

// Total returns the number of directories found across all locations.
func (r *Result) Total() int {
	n := 0
	for _, dirs := range r.Locations {
		n += len(dirs)
	}
	return n
}

// Common sweeps the common locations with the full content-based scan.
// Individual location failures are logged and skipped, never fatal, except
// for context cancellation and deadline errors which abort the sweep.
func (d *Discoverer) Common(ctx context.Context) (*Result, error) {
	return d.sweep(ctx, d.scanner.Scan)
}

// Potential sweeps the common locations with the cheap presence-only check.
// Higher false-positive rate, intended as a fast pre-filter before Common.
func (d *Discoverer) Potential(ctx context.Context) (*Result, error) {
	return d.sweep(ctx, d.scanner.ListCandidates)
}

func (d *Discoverer) sweep(ctx context.Context, scanFn func(context.Context, string, int) ([]string, error)) (*Result, error) {
	locations := d.locations
	if locations == nil {
		var err error
		locations, err = paths.CommonLocations()
		if err != nil {
			return nil, err
		}
	}

	result := &Result{Locations: make(map[string][]string, len(locations))}

	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := scanFn(ctx, loc, d.maxDepth)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			d.logger.Debug("skipping location", "location", loc, "error", err)
			result.Locations[loc] = []string{}
			continue
		}
		if found == nil {
			found = []string{}
		}
		result.Locations[loc] = found
	}

	result.Summary = fmt.Sprintf("Found %d server directories across %d locations",
		result.Total(), len(result.Locations))
	return result, nil
}
