package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	holsterrors "github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/pkg/fileutil"
)

// DefaultMaxDepth is how far Scan descends below the root's immediate
// subdirectories when the caller does not specify a depth. The immediate
// subdirectories count as depth zero, so the default reaches a server
// nested under project/subdir layouts such as my-projects/app/mcp-server.
const DefaultMaxDepth = 2

// Default heuristic markers for recognizing MCP server source files.
var (
	// defaultImportMarkers match a framework import. Any one marker suffices.
	defaultImportMarkers = []string{
		"mcp.server.fastmcp",
		"from fastmcp import",
	}

	// defaultToolPattern matches a tool-registration decorator such as
	// "@mcp.tool(".
	defaultToolPattern = regexp.MustCompile(`@\w+\.tool\(`)
)

// Scanner classifies directories as likely MCP server projects using
// file-content and file-presence heuristics.
type Scanner struct {
	logger *slog.Logger

	// importMarkers and toolPattern define the content heuristic. They are
	// fields so the matching rules can change without touching traversal or
	// registry logic.
	importMarkers []string
	toolPattern   *regexp.Regexp
}

// NewScanner creates a Scanner that logs warnings to stderr.
func NewScanner() *Scanner {
	return NewScannerWithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
}

// NewScannerWithLogger creates a Scanner with the given logger.
func NewScannerWithLogger(logger *slog.Logger) *Scanner {
	return &Scanner{
		logger:        logger,
		importMarkers: defaultImportMarkers,
		toolPattern:   defaultToolPattern,
	}
}

// Scan traverses root's subdirectories and returns the paths classified as
// server-like, sorted. The root's immediate subdirectories are depth zero;
// traversal descends while the depth is at most maxDepth, so maxDepth 2
// classifies directories up to three path components below root. A
// non-positive maxDepth means DefaultMaxDepth.
//
// Traversal short-circuits below any directory already classified as
// server-like, so nested matches are reported once at the highest level.
// Unreadable subdirectories are skipped. The context deadline is checked at
// each directory boundary; exceeding it aborts the scan with ErrScanTimeout.
//
// Returns ErrNotFound only when root itself does not exist.
func (s *Scanner) Scan(ctx context.Context, root string, maxDepth int) ([]string, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(holsterrors.ErrNotFound, "directory %q", root)
		}
		return nil, errors.Wrapf(err, "checking scan root %q", root)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(holsterrors.ErrNotFound, "%q is not a directory", root)
	}

	var found []string
	if err := s.walk(ctx, root, 0, maxDepth, &found); err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// walk classifies the subdirectories of dir, which sit at the given depth,
// appending server-like paths to found. It descends while depth < maxDepth.
func (s *Scanner) walk(ctx context.Context, dir string, depth, maxDepth int, found *[]string) error {
	if err := CheckDeadline(ctx); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Best-effort discovery: an unreadable branch is skipped, not fatal.
		s.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		sub := filepath.Join(dir, entry.Name())

		if s.IsServerLike(sub) {
			*found = append(*found, sub)
			// Descendants of a match are not reported separately.
			continue
		}

		if depth < maxDepth {
			if err := s.walk(ctx, sub, depth+1, maxDepth, found); err != nil {
				return err
			}
		}
	}

	return nil
}

// IsServerLike reports whether dir likely contains an MCP server project:
// either a source file in dir (or under dir/src) carries both a
// framework-import marker and a tool-registration marker, or a dependency
// manifest directly in dir mentions the framework. Unreadable files are
// non-matches, never errors.
func (s *Scanner) IsServerLike(dir string) bool {
	if s.hasServerSource(dir) {
		return true
	}
	return s.hasServerManifest(dir)
}

// hasServerSource looks for a Python source file in dir, or anywhere under
// dir's src subdirectory, whose content carries both heuristic markers.
//
// The check deliberately does not recurse into arbitrary subdirectories:
// projects nest (a parent folder full of server checkouts is not itself a
// server), and classifying a parent by its children would swallow every
// nested match during traversal.
func (s *Scanner) hasServerSource(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".py" {
			continue
		}
		if s.sourceMatches(filepath.Join(dir, entry.Name())) {
			return true
		}
	}

	srcDir := filepath.Join(dir, "src")
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return false
	}

	match := false
	_ = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries, keep walking siblings.
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) != ".py" {
			return nil
		}
		if s.sourceMatches(path) {
			match = true
			return fs.SkipAll
		}
		return nil
	})
	return match
}

// sourceMatches reads one source file and applies the content heuristic.
func (s *Scanner) sourceMatches(path string) bool {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return false
	}
	content := string(data)

	imported := false
	for _, marker := range s.importMarkers {
		if strings.Contains(content, marker) {
			imported = true
			break
		}
	}
	if !imported {
		return false
	}

	return s.toolPattern.MatchString(content)
}

// CheckDeadline maps a done context to the scan error taxonomy: an exceeded
// deadline becomes ErrScanTimeout, other cancellation causes pass through.
// Shared by every scan-surface entry point so callers can branch on the
// sentinel regardless of which operation timed out.
func CheckDeadline(ctx context.Context) error {
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.Wrap(holsterrors.ErrScanTimeout, "deadline exceeded")
		}
		return ctx.Err()
	default:
		return nil
	}
}
