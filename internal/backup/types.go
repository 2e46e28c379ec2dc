package backup

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// Default configuration values.
const (
	// DefaultRetentionCount is the default number of snapshots to retain.
	DefaultRetentionCount = 10

	// DirName is the snapshot directory created next to the managed file.
	DirName = ".holster-backups"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNoSnapshots indicates no snapshots exist for the managed file.
	ErrNoSnapshots = errors.New("no snapshots found")

	// ErrSnapshotCorrupted indicates snapshot integrity verification failed.
	// This occurs when the snapshot's SHA256 hash doesn't match its manifest.
	ErrSnapshotCorrupted = errors.New("snapshot corrupted")
)

// Snapshot describes one point-in-time copy of the managed file.
// It is stored as <id>.manifest.json next to the snapshot data.
type Snapshot struct {
	// ID is the snapshot identifier, a UTC timestamp.
	ID string `json:"id"`

	// Version is the manifest format version.
	Version int `json:"version"`

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`

	// Source is the path of the file that was snapshotted.
	Source string `json:"source"`

	// SHA256Hash verifies snapshot integrity on restore.
	SHA256Hash string `json:"sha256_hash"`

	// Size is the snapshot size in bytes.
	Size int64 `json:"size"`
}
