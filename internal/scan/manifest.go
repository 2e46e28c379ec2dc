package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// frameworkName is what a dependency manifest must mention for a directory to
// count as server-like on the manifest heuristic alone.
const frameworkName = "mcp"

// manifestFiles are dependency manifests checked directly in a candidate
// directory.
var manifestFiles = []string{
	"requirements.txt",
	"pyproject.toml",
}

// hasServerManifest reports whether a dependency manifest directly in dir
// mentions the framework name case-insensitively.
func (s *Scanner) hasServerManifest(dir string) bool {
	for _, name := range manifestFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if filepath.Ext(name) == ".toml" {
			if tomlMentions(data, frameworkName) {
				return true
			}
			// Fall through to the substring check when structured parsing
			// found nothing; a mention outside the parsed tables still counts.
		}

		if strings.Contains(strings.ToLower(string(data)), frameworkName) {
			return true
		}
	}
	return false
}

// tomlMentions parses TOML and searches keys and string values for the
// framework name. Returns false on parse failure; callers fall back to a raw
// substring check.
func tomlMentions(data []byte, name string) bool {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return false
	}
	return valueMentions(tree, strings.ToLower(name))
}

// valueMentions walks a decoded TOML tree looking for the name in keys and
// string values.
func valueMentions(v any, name string) bool {
	switch val := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(val), name)
	case []any:
		for _, item := range val {
			if valueMentions(item, name) {
				return true
			}
		}
	case map[string]any:
		for k, item := range val {
			if strings.Contains(strings.ToLower(k), name) {
				return true
			}
			if valueMentions(item, name) {
				return true
			}
		}
	}
	return false
}
