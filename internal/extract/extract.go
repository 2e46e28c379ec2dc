package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/thoreinstein/holster/internal/scan"
	"github.com/thoreinstein/holster/internal/server"
	"github.com/thoreinstein/holster/pkg/fileutil"
)

// DefaultCommand is used when no documentation block supplies one.
const DefaultCommand = "uv"

// Descriptor is a registrable server specification extracted from a candidate
// directory. It is ephemeral; nothing is persisted until a caller registers
// it with the registry.
type Descriptor struct {
	// Path is the directory the descriptor was extracted from.
	Path string `json:"path"`

	// SuggestedName is the server name proposed by the documentation block,
	// or the directory's base name when no block was found.
	SuggestedName string `json:"suggested_name"`

	// Command is the parsed launch command, or DefaultCommand.
	Command string `json:"command"`

	// Args are the parsed launch arguments, empty when none were found.
	Args []string `json:"args"`

	// RawInstructions is the full documentation text when a config block was
	// successfully parsed from it, empty otherwise.
	RawInstructions string `json:"raw_instructions,omitempty"`
}

// Server converts the descriptor into a registrable server entry.
func (d *Descriptor) Server() *server.Server {
	return server.New(d.SuggestedName, d.Command, d.Args)
}

// fencedBlock matches a fenced code block and captures its body.
var fencedBlock = regexp.MustCompile("(?s)```[^\\n]*\\n(.*?)```")

// Extractor pulls embedded mcpServers config blocks out of project
// documentation.
type Extractor struct {
	scanner *scan.Scanner
	logger  *slog.Logger
}

// New creates an Extractor. The scanner is used by ScanSpecific to filter
// directories before extraction.
func New(scanner *scan.Scanner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{scanner: scanner, logger: logger}
}

// Extract locates the first README* file in dir and scans it for a fenced
// code block containing an mcpServers JSON object. The first server entry of
// the first block that parses wins; blocks that fail to parse are skipped.
//
// A missing README or the absence of a parsable block is not an error: the
// returned descriptor falls back to the directory's base name and
// DefaultCommand, with RawInstructions unset.
func (e *Extractor) Extract(dir string) (*Descriptor, error) {
	desc := &Descriptor{
		Path:          dir,
		SuggestedName: filepath.Base(dir),
		Command:       DefaultCommand,
		Args:          []string{},
	}

	readme, err := findReadme(dir)
	if err != nil || readme == "" {
		return desc, nil
	}

	data, err := fileutil.ReadFileWithLimit(readme)
	if err != nil {
		e.logger.Debug("skipping unreadable readme", "path", readme, "error", err)
		return desc, nil
	}

	for _, m := range fencedBlock.FindAllSubmatch(data, -1) {
		name, spec, ok := firstServerEntry(m[1])
		if !ok {
			continue
		}

		desc.SuggestedName = name
		if spec.Command != "" {
			desc.Command = spec.Command
		}
		if spec.Args != nil {
			desc.Args = spec.Args
		}
		desc.RawInstructions = string(data)
		return desc, nil
	}

	return desc, nil
}

// findReadme returns the first file in dir matching the README* naming
// pattern, case-insensitively, or an empty string when none exists.
func findReadme(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(entry.Name()), "README") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// serverSpec is the launch specification inside a documentation block entry.
type serverSpec struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// firstServerEntry decodes block as a JSON object with a nested mcpServers
// map and returns its first entry in document order. ok is false when the
// block is not valid JSON, lacks an mcpServers object, or the map is empty.
func firstServerEntry(block []byte) (name string, spec serverSpec, ok bool) {
	dec := json.NewDecoder(bytes.NewReader(block))

	tok, err := dec.Token()
	if err != nil {
		return "", spec, false
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return "", spec, false
	}

	// Walk top-level keys looking for mcpServers
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", spec, false
		}
		key, isStr := keyTok.(string)
		if !isStr {
			return "", spec, false
		}

		if key != server.ActiveKey {
			// Skip this key's value entirely
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return "", spec, false
			}
			continue
		}

		// Decode the mcpServers object: first key wins
		tok, err := dec.Token()
		if err != nil {
			return "", spec, false
		}
		if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
			return "", spec, false
		}
		if !dec.More() {
			return "", spec, false
		}
		nameTok, err := dec.Token()
		if err != nil {
			return "", spec, false
		}
		name, isStr = nameTok.(string)
		if !isStr {
			return "", spec, false
		}
		if err := dec.Decode(&spec); err != nil {
			return "", spec, false
		}
		return name, spec, true
	}

	return "", spec, false
}

// ScanSpecific extracts descriptors from the given directories. Directories
// that do not exist or are not server-like (per the scanner's content check)
// are skipped. Extraction is applied to each directory's project root, and
// results are keyed by suggested name.
//
// When two directories resolve to the same suggested name the later one wins;
// the collision is logged so callers can surface it.
func (e *Extractor) ScanSpecific(ctx context.Context, dirs []string) (map[string]*Descriptor, error) {
	results := make(map[string]*Descriptor)

	for _, dir := range dirs {
		if err := scan.CheckDeadline(ctx); err != nil {
			return nil, err
		}

		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			e.logger.Debug("skipping missing directory", "dir", dir)
			continue
		}
		if !e.scanner.IsServerLike(dir) {
			e.logger.Debug("skipping non-server directory", "dir", dir)
			continue
		}

		desc, err := e.Extract(scan.ProjectRoot(dir))
		if err != nil {
			return nil, err
		}

		if prev, exists := results[desc.SuggestedName]; exists {
			e.logger.Warn("server name collision, keeping later entry",
				"name", desc.SuggestedName,
				"replaced", prev.Path,
				"kept", desc.Path)
		}
		results[desc.SuggestedName] = desc
	}

	return results, nil
}
