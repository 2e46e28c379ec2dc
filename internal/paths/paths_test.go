package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	require.NoError(t, EnsureDir(target, 0))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent
	require.NoError(t, EnsureDir(target, 0))
}

func TestDefaultStorePath(t *testing.T) {
	path := DefaultStorePath()
	assert.True(t, strings.HasSuffix(path, filepath.Join("Claude", "claude_desktop_config.json")),
		"unexpected store path: %s", path)
}

func TestAppConfigDir(t *testing.T) {
	assert.Equal(t, AppName, filepath.Base(AppConfigDir()))
}

func TestCommonLocations(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.MkdirAll(filepath.Join(home, "mcp-servers"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(home, "visible-project"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "regular-file"), []byte("x"), 0o644))

	locations, err := CommonLocations()
	require.NoError(t, err)

	assert.Contains(t, locations, filepath.Join(home, "mcp-servers"))
	assert.Contains(t, locations, filepath.Join(home, "visible-project"))
	assert.NotContains(t, locations, filepath.Join(home, ".hidden"))
	assert.NotContains(t, locations, filepath.Join(home, "regular-file"))

	// No duplicates even though mcp-servers is both well-known and a home subdir
	seen := make(map[string]int)
	for _, loc := range locations {
		seen[loc]++
	}
	assert.Equal(t, 1, seen[filepath.Join(home, "mcp-servers")])
}
