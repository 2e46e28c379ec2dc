// Package fileutil provides atomic file write helpers and size-limited reads.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// AtomicWriteFile writes data to path through a temporary file in the same
// directory followed by a rename, so a crash mid-write never leaves a
// partially written file at path. The parent directory must already exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpName, err := writeTemp(filepath.Dir(path), data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// writeTemp creates a temp file next to the target, writes data, syncs,
// applies perm, and returns the temp file name. On error the temp file is
// removed.
func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, ".holster-atomic-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	name := tmp.Name()

	write := func() error {
		if _, err := tmp.Write(data); err != nil {
			return errors.Wrap(err, "writing temp file")
		}
		if err := tmp.Sync(); err != nil {
			return errors.Wrap(err, "syncing temp file")
		}
		if err := tmp.Chmod(perm); err != nil {
			return errors.Wrap(err, "setting file permissions")
		}
		return nil
	}

	if err := write(); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", errors.Wrap(err, "closing temp file")
	}
	return name, nil
}

// AtomicWriteJSONWithPerm writes v as two-space indented JSON with a
// trailing newline, atomically, using the given permissions.
func AtomicWriteJSONWithPerm(path string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return AtomicWriteFile(path, append(data, '\n'), perm)
}

// AtomicWriteJSON is AtomicWriteJSONWithPerm with 0644 permissions.
func AtomicWriteJSON(path string, v any) error {
	return AtomicWriteJSONWithPerm(path, v, 0644)
}

// AtomicWriteYAML writes v as YAML atomically with 0644 permissions.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on types it cannot encode.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return AtomicWriteFile(path, data, 0644)
}
