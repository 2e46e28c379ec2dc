// Package backup takes point-in-time snapshots of the managed config file
// before holster mutates it.
//
// Snapshots live in a .holster-backups directory next to the managed file.
// Each snapshot is a verbatim copy of the file plus a small manifest
// recording when it was taken and a SHA256 hash, verified on restore. Old
// snapshots are pruned past a retention count.
//
// EnsureSnapshot takes at most one snapshot per file per process, so a
// session of many mutations costs one copy and a failed session can always
// be rolled back to its starting state:
//
//	if err := backup.EnsureSnapshot(storePath); err != nil {
//		return err
//	}
//	// mutate the store
package backup
