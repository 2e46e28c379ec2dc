package scan

import (
	"path/filepath"
	"strings"
)

// ProjectRoot returns path truncated just before its first "src" segment,
// surfacing the enclosing project rather than an internal source subfolder.
// Paths without a src segment are returned unchanged.
//
// The heuristic is deliberately naive: on unusual layouts the result can fall
// outside the directory that was scanned.
func ProjectRoot(path string) string {
	sep := string(filepath.Separator)
	segments := strings.Split(filepath.Clean(path), sep)

	for i, segment := range segments {
		if segment != "src" {
			continue
		}
		if i == 0 {
			return path
		}
		root := strings.Join(segments[:i], sep)
		if root == "" {
			// src directly under the filesystem root
			return sep
		}
		return root
	}

	return path
}
