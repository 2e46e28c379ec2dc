package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	holsterrors "github.com/thoreinstein/holster/internal/errors"
)

// ListCandidates traverses root like Scan but classifies directories with
// presence checks only: a Python source file, a dependency manifest, or a
// src subdirectory directly in the directory. No file contents are read, so
// it is cheap but has a higher false-positive rate. Intended as a fast
// pre-filter before Scan.
func (s *Scanner) ListCandidates(ctx context.Context, root string, maxDepth int) ([]string, error) {
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
	if err := s.walkCandidates(ctx, root, 0, maxDepth, &found); err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func (s *Scanner) walkCandidates(ctx context.Context, dir string, depth, maxDepth int, found *[]string) error {
	if err := CheckDeadline(ctx); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		sub := filepath.Join(dir, entry.Name())

		if isCandidate(sub) {
			*found = append(*found, sub)
			continue
		}

		if depth < maxDepth {
			if err := s.walkCandidates(ctx, sub, depth+1, maxDepth, found); err != nil {
				return err
			}
		}
	}

	return nil
}

// isCandidate applies the presence-only checks to a single directory.
func isCandidate(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if name == "src" {
				return true
			}
			continue
		}
		if filepath.Ext(name) == ".py" {
			return true
		}
		for _, manifest := range manifestFiles {
			if name == manifest {
				return true
			}
		}
	}
	return false
}
