// Package store owns the on-disk MCP server config document.
//
// A Store is bound to an explicit file path; there is no process-wide
// singleton. Every operation is a full read or a full write of the document,
// the file being the single source of truth. Writes go through a temp file
// and rename so an interrupted save never corrupts the previous committed
// state.
package store

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	holsterrors "github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/internal/paths"
	"github.com/thoreinstein/holster/internal/server"
	"github.com/thoreinstein/holster/pkg/fileutil"
)

// Store provides load/save access to the config document at a fixed path.
type Store struct {
	path string
}

// New creates a Store bound to the given file path.
// Call Open to create the backing file if it does not exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path the store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Open ensures the backing file exists, writing an initial document with two
// empty buckets when it does not. Parent directories are created as needed.
func (s *Store) Open() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "checking config file %s", s.path)
	}

	if err := paths.EnsureDir(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", s.path)
	}

	return s.Save(server.NewDocument())
}

// Load reads and parses the full document.
// Returns ErrCorruptConfig when the file is not valid JSON or lacks either
// of the two required bucket keys.
func (s *Store) Load() (*server.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", s.path)
	}

	var doc server.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(holsterrors.ErrCorruptConfig, "%s: %v", s.path, err)
	}

	if doc.Active == nil || doc.Inactive == nil {
		return nil, errors.Wrapf(holsterrors.ErrCorruptConfig,
			"%s: missing required key %q or %q", s.path, server.ActiveKey, server.InactiveKey)
	}

	return &doc, nil
}

// Save serializes the full document and writes it atomically.
// Output is indented with sorted keys, so saves are deterministic.
func (s *Store) Save(doc *server.Document) error {
	if err := fileutil.AtomicWriteJSON(s.path, doc); err != nil {
		return errors.Wrapf(err, "writing config file %s", s.path)
	}
	return nil
}
