package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/thoreinstein/holster/internal/backup"
	"github.com/thoreinstein/holster/internal/config"
	"github.com/thoreinstein/holster/internal/discover"
	"github.com/thoreinstein/holster/internal/extract"
	"github.com/thoreinstein/holster/internal/logging"
	"github.com/thoreinstein/holster/internal/registry"
	"github.com/thoreinstein/holster/internal/scan"
	"github.com/thoreinstein/holster/internal/store"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorCyan  = "\033[36m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// currentConfig returns the loaded config, falling back to defaults when
// loading has not happened (direct test invocation of run functions).
func currentConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// resolveStorePath returns the store path, preferring the --store flag over
// the configured value.
func resolveStorePath() string {
	if storePath != "" {
		return storePath
	}
	return currentConfig().StorePath
}

// openRegistry builds a Registry over the resolved store path.
func openRegistry(logger *slog.Logger) (*registry.Registry, error) {
	st := store.New(resolveStorePath())
	if err := st.Open(); err != nil {
		return nil, err
	}
	return registry.New(st, logger), nil
}

// openRegistryForWrite is openRegistry plus a pre-mutation snapshot of the
// managed file, taken once per session.
func openRegistryForWrite(logger *slog.Logger) (*registry.Registry, error) {
	if err := backup.EnsureSnapshot(resolveStorePath()); err != nil {
		return nil, err
	}
	return openRegistry(logger)
}

// newScanner builds a Scanner sharing the command's logger.
func newScanner(logger *slog.Logger) *scan.Scanner {
	return scan.NewScannerWithLogger(logger)
}

// newExtractor builds an Extractor sharing the command's logger.
func newExtractor(logger *slog.Logger) *extract.Extractor {
	return extract.New(newScanner(logger), logger)
}

// newDiscoverer builds a Discoverer from the scan config.
func newDiscoverer(logger *slog.Logger) *discover.Discoverer {
	c := currentConfig()
	opts := []discover.Option{discover.WithMaxDepth(c.Scan.MaxDepth)}
	if len(c.Scan.Locations) > 0 {
		opts = append(opts, discover.WithLocations(c.Scan.Locations))
	}
	return discover.New(newScanner(logger), logger, opts...)
}

// scanContext derives a context bounded by the configured scan timeout.
// A zero timeout disables the deadline.
func scanContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		timeout = currentConfig().Scan.Timeout
	}
	if timeout <= 0 {
		return parent, func() {}
	}
	return context.WithTimeout(parent, timeout)
}

// commandLogger returns the logger carried on the command context.
func commandLogger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewDiscard()
	}
	return logging.FromContext(ctx)
}
