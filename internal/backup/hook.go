package backup

import (
	"os"
	"sync"

	"github.com/cockroachdb/errors"
)

// snapshotOnce tracks per-file snapshot state within a session.
// This prevents redundant snapshots when multiple mutations occur.
var (
	snapshotOnce  = make(map[string]*sync.Once)
	snapshotMutex sync.Mutex
)

// EnsureSnapshot ensures a snapshot of the file at path exists before
// modification. Only one snapshot is taken per file per session regardless
// of how many times it's called.
//
// A missing file is a no-op; there is nothing to protect yet.
func EnsureSnapshot(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	snapshotMutex.Lock()
	once, exists := snapshotOnce[path]
	if !exists {
		once = &sync.Once{}
		snapshotOnce[path] = once
	}
	snapshotMutex.Unlock()

	var snapErr error
	once.Do(func() {
		_, snapErr = NewManager().Snapshot(path)
		if snapErr != nil {
			// Reset the Once so the caller can retry.
			snapshotMutex.Lock()
			delete(snapshotOnce, path)
			snapshotMutex.Unlock()
		}
	})

	if snapErr != nil {
		return errors.Wrapf(snapErr, "snapshotting %s", path)
	}
	return nil
}

// ResetSnapshotState clears the per-session snapshot state.
// This is primarily useful for testing to reset state between tests.
func ResetSnapshotState() {
	snapshotMutex.Lock()
	defer snapshotMutex.Unlock()
	snapshotOnce = make(map[string]*sync.Once)
}
