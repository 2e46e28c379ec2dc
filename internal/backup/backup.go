package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/holster/pkg/fileutil"
)

// Manager handles snapshot creation, restoration, and pruning for one
// managed file.
type Manager struct {
	rootDir        string
	retentionCount int
}

// Option configures a Manager.
type Option func(*Manager)

// WithSnapshotDir sets the snapshot directory. When unset, snapshots go to
// a DirName directory next to the managed file.
func WithSnapshotDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of snapshots to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a snapshot Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// dir returns the snapshot directory for the given managed file.
func (m *Manager) dir(path string) string {
	if m.rootDir != "" {
		return m.rootDir
	}
	return filepath.Join(filepath.Dir(path), DirName)
}

// Snapshot copies the file at path into the snapshot directory and records
// a manifest with its SHA256 hash. Older snapshots beyond the retention
// count are pruned.
func (m *Manager) Snapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	dir := m.dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating snapshot directory")
	}

	sum := sha256.Sum256(data)
	snap := &Snapshot{
		ID:         m.nextID(dir),
		Version:    ManifestVersion,
		CreatedAt:  time.Now().UTC(),
		Source:     path,
		SHA256Hash: hex.EncodeToString(sum[:]),
		Size:       int64(len(data)),
	}

	if err := fileutil.AtomicWriteFile(m.dataPath(dir, snap.ID), data, 0o600); err != nil {
		return nil, errors.Wrap(err, "writing snapshot")
	}
	if err := fileutil.AtomicWriteJSON(m.manifestPath(dir, snap.ID), snap); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.prune(dir); err != nil {
		return nil, err
	}
	return snap, nil
}

// List returns the snapshots for the file at path, newest first.
func (m *Manager) List(path string) ([]*Snapshot, error) {
	dir := m.dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading snapshot directory")
	}

	var snaps []*Snapshot
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".manifest.json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		snaps = append(snaps, &snap)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].ID > snaps[j].ID
	})
	return snaps, nil
}

// Restore writes the identified snapshot's contents back over the file at
// path after verifying its hash. An empty id restores the newest snapshot.
func (m *Manager) Restore(path, id string) (*Snapshot, error) {
	snaps, err := m.List(path)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, ErrNoSnapshots
	}

	var snap *Snapshot
	if id == "" {
		snap = snaps[0]
	} else {
		for _, s := range snaps {
			if s.ID == id {
				snap = s
				break
			}
		}
		if snap == nil {
			return nil, errors.Wrapf(ErrNoSnapshots, "id %q", id)
		}
	}

	dir := m.dir(path)
	data, err := os.ReadFile(m.dataPath(dir, snap.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "reading snapshot %s", snap.ID)
	}

	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != snap.SHA256Hash {
		return nil, errors.Wrapf(ErrSnapshotCorrupted, "snapshot %s", snap.ID)
	}

	if err := fileutil.AtomicWriteFile(path, data, 0o600); err != nil {
		return nil, errors.Wrap(err, "restoring snapshot")
	}
	return snap, nil
}

// prune removes the oldest snapshots beyond the retention count.
func (m *Manager) prune(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, "reading snapshot directory")
	}

	var ids []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".manifest.json") {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".manifest.json"))
		}
	}
	if len(ids) <= m.retentionCount {
		return nil
	}

	// Oldest first; IDs are sortable timestamps.
	sort.Strings(ids)
	for _, id := range ids[:len(ids)-m.retentionCount] {
		os.Remove(m.dataPath(dir, id))
		os.Remove(m.manifestPath(dir, id))
	}
	return nil
}

// nextID returns a timestamp ID, suffixed when a snapshot from the same
// second already exists.
func (m *Manager) nextID(dir string) string {
	id := time.Now().UTC().Format("20060102T150405")
	candidate := id
	for n := 1; ; n++ {
		if _, err := os.Stat(m.manifestPath(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
}

func (m *Manager) dataPath(dir, id string) string {
	return filepath.Join(dir, id+".json")
}

func (m *Manager) manifestPath(dir, id string) string {
	return filepath.Join(dir, id+".manifest.json")
}
