package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/holster/internal/backup"
	"github.com/thoreinstein/holster/internal/paths"
	"github.com/thoreinstein/holster/internal/store"
)

// maxSecureFilePerm is the maximum secure permission for the managed file (-rw-r--r--).
const maxSecureFilePerm os.FileMode = 0o644

// ConfigCheck reports whether the holster config file loaded cleanly.
type ConfigCheck struct {
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check from the outcome of config loading.
func NewConfigCheck(loadErr error) *ConfigCheck {
	return &ConfigCheck{loadErr: loadErr}
}

func (c *ConfigCheck) Name() string     { return "config-load" }
func (c *ConfigCheck) Category() string { return "config" }

// Run reports the config load outcome.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.loadErr != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config failed to load: %v", c.loadErr)
		result.FixHint = "run 'holster init' to write a fresh config file"
		return result
	}

	result.Status = SeverityPass
	result.Message = "config loaded"
	return result
}

// StoreCheck validates that the managed config file parses and that its
// two buckets do not overlap.
type StoreCheck struct {
	path string
}

var _ Check = (*StoreCheck)(nil)

// NewStoreCheck creates a store integrity check.
func NewStoreCheck(path string) *StoreCheck {
	return &StoreCheck{path: path}
}

func (c *StoreCheck) Name() string     { return "store-integrity" }
func (c *StoreCheck) Category() string { return "store" }

// Run loads the managed file and validates the bucket partition.
func (c *StoreCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "managed file does not exist yet"
		result.Details = map[string]any{"path": c.path}
		result.FixHint = "it will be created on first use, or run 'holster init'"
		return result
	}

	doc, err := store.New(c.path).Load()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("managed file failed to load: %v", err)
		result.Details = map[string]any{"path": c.path}
		result.FixHint = "run 'holster backup restore' to roll back to a good snapshot"
		return result
	}

	var overlap []string
	for name := range doc.Active {
		if _, ok := doc.Inactive[name]; ok {
			overlap = append(overlap, name)
		}
	}
	if len(overlap) > 0 {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d server(s) present in both buckets", len(overlap))
		result.Details = map[string]any{"names": overlap}
		result.FixHint = "remove the duplicates from unusedMcpServers by hand"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d active, %d inactive server(s)",
		len(doc.Active), len(doc.Inactive))
	return result
}

// StorePermissionCheck validates permissions on the managed file.
type StorePermissionCheck struct {
	path string
}

var _ Check = (*StorePermissionCheck)(nil)

// NewStorePermissionCheck creates a permission check for the managed file.
func NewStorePermissionCheck(path string) *StorePermissionCheck {
	return &StorePermissionCheck{path: path}
}

func (c *StorePermissionCheck) Name() string     { return "store-permissions" }
func (c *StorePermissionCheck) Category() string { return "filesystem" }

// Run checks that the managed file is not group or world writable.
func (c *StorePermissionCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			result.Status = SeverityInfo
			result.Message = "managed file does not exist yet"
			return result
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat managed file: %v", err)
		return result
	}

	mode := info.Mode().Perm()
	if mode&^maxSecureFilePerm != 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("managed file is too permissive (%04o)", mode)
		result.Details = map[string]any{"path": c.path, "mode": fmt.Sprintf("%04o", mode)}
		result.FixHint = fmt.Sprintf("chmod 644 %s", c.path)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("managed file permissions are %04o", mode)
	return result
}

// ScanLocationsCheck verifies that discovery has somewhere to look.
type ScanLocationsCheck struct{}

var _ Check = (*ScanLocationsCheck)(nil)

// NewScanLocationsCheck creates a scan locations check.
func NewScanLocationsCheck() *ScanLocationsCheck {
	return &ScanLocationsCheck{}
}

func (c *ScanLocationsCheck) Name() string     { return "scan-locations" }
func (c *ScanLocationsCheck) Category() string { return "scan" }

// Run resolves the common locations and reports how many exist.
func (c *ScanLocationsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	locations, err := paths.CommonLocations()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot resolve common locations: %v", err)
		return result
	}
	if len(locations) == 0 {
		result.Status = SeverityWarning
		result.Message = "no common locations exist; discovery will find nothing"
		result.FixHint = "set scan.locations in the config file"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d location(s) available for discovery", len(locations))
	return result
}

// SnapshotCheck reports on the snapshot safety net for the managed file.
type SnapshotCheck struct {
	path string
}

var _ Check = (*SnapshotCheck)(nil)

// NewSnapshotCheck creates a snapshot check for the managed file.
func NewSnapshotCheck(path string) *SnapshotCheck {
	return &SnapshotCheck{path: path}
}

func (c *SnapshotCheck) Name() string     { return "snapshots" }
func (c *SnapshotCheck) Category() string { return "store" }

// Run reports how many snapshots exist for the managed file.
func (c *SnapshotCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	snaps, err := backup.NewManager().List(c.path)
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("cannot list snapshots: %v", err)
		return result
	}
	if len(snaps) == 0 {
		result.Status = SeverityInfo
		result.Message = "no snapshots yet; one is taken before the first mutation"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d snapshot(s), newest from %s",
		len(snaps), snaps[0].CreatedAt.Format("2006-01-02 15:04:05"))
	return result
}
