package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the application name used for config directory naming.
const AppName = "holster"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the directory holding holster's own configuration.
// Returns: <ConfigHome>/holster/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DefaultStorePath returns the default location of the managed MCP server
// config document. This is the Claude Desktop config file, which lives in
// the platform's application-support directory:
//   - macOS: ~/Library/Application Support/Claude/claude_desktop_config.json
//   - Linux: ~/.config/Claude/claude_desktop_config.json
func DefaultStorePath() string {
	return filepath.Join(ConfigHome(), "Claude", "claude_desktop_config.json")
}

// wellKnownProjectDirs lists directories, relative to the home directory,
// where MCP server projects commonly live.
var wellKnownProjectDirs = []string{
	"mcp-servers",
	filepath.Join("Documents", "mcp-servers"),
	"Projects",
	"Developer",
	"src",
	"code",
}

// CommonLocations returns candidate directories to scan for MCP server
// projects: a fixed list of well-known project directories plus the
// immediate non-hidden subdirectories of the user's home directory.
// Directories that do not exist are excluded.
func CommonLocations() ([]string, error) {
	home, err := ResolveHome()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var locations []string
	add := func(dir string) {
		if seen[dir] {
			return
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		locations = append(locations, dir)
	}

	for _, rel := range wellKnownProjectDirs {
		add(filepath.Join(home, rel))
	}

	entries, err := os.ReadDir(home)
	if err != nil {
		// Well-known directories are still usable even when the home
		// directory itself cannot be listed.
		return locations, nil
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		add(filepath.Join(home, entry.Name()))
	}

	return locations, nil
}
