package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	holsterrors "github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/internal/logging"
)

const serverSource = "from mcp.server.fastmcp import FastMCP\n@mcp.tool()\ndef tool(): pass"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newServerTree builds the canonical fixture: two servers directly under a
// collection directory, two nested another level down inside project
// directories, and one non-server directory. All four must be visible at
// the default depth.
func newServerTree(t *testing.T) (root string, servers []string, nonServer string) {
	t.Helper()
	root = t.TempDir()

	server1 := filepath.Join(root, "mcp-servers", "server1")
	writeFile(t, filepath.Join(server1, "server1.py"), serverSource)
	writeFile(t, filepath.Join(server1, "requirements.txt"), "mcp[cli]>=1.7.1")

	server2 := filepath.Join(root, "mcp-servers", "server2")
	writeFile(t, filepath.Join(server2, "server2.py"), serverSource)
	writeFile(t, filepath.Join(server2, "requirements.txt"), "mcp[cli]>=1.7.1")

	nested1 := filepath.Join(root, "my-projects", "project1", "mcp-server")
	writeFile(t, filepath.Join(nested1, "server.py"), serverSource)

	nested2 := filepath.Join(root, "my-projects", "project2", "tools")
	writeFile(t, filepath.Join(nested2, "mcp-tool.py"), serverSource)

	nonServer = filepath.Join(root, "non-server")
	writeFile(t, filepath.Join(nonServer, "script.py"), "print('not a server')")

	return root, []string{server1, server2, nested1, nested2}, nonServer
}

func testScanner(t *testing.T) *Scanner {
	t.Helper()
	return NewScannerWithLogger(logging.ForTest(t))
}

func TestScan(t *testing.T) {
	root, servers, nonServer := newServerTree(t)

	// Default depth: the nested my-projects servers must be found too.
	found, err := testScanner(t).Scan(context.Background(), root, 0)
	require.NoError(t, err)

	assert.ElementsMatch(t, servers, found)
	assert.NotContains(t, found, nonServer)
}

func TestScan_ShortCircuitsBelowMatch(t *testing.T) {
	root := t.TempDir()

	outer := filepath.Join(root, "outer")
	writeFile(t, filepath.Join(outer, "server.py"), serverSource)
	// inner would also match, but its parent already did
	writeFile(t, filepath.Join(outer, "nested", "inner.py"), serverSource)

	found, err := testScanner(t).Scan(context.Background(), root, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{outer}, found)
}

func TestScan_EmptyDirectory(t *testing.T) {
	found, err := testScanner(t).Scan(context.Background(), t.TempDir(), 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := testScanner(t).Scan(context.Background(), "/non/existent/path", 0)
	assert.True(t, errors.Is(err, holsterrors.ErrNotFound), "got %v", err)
}

func TestScan_RespectsMaxDepth(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c", "d")
	writeFile(t, filepath.Join(deep, "server.py"), serverSource)

	// maxDepth 2 classifies up to three components below root; d is four.
	found, err := testScanner(t).Scan(context.Background(), root, 2)
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = testScanner(t).Scan(context.Background(), root, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{deep}, found)
}

func TestScan_DeadlineExceeded(t *testing.T) {
	root, _, _ := newServerTree(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	// Ensure the deadline has passed before the first directory boundary
	time.Sleep(time.Millisecond)

	_, err := testScanner(t).Scan(ctx, root, 3)
	assert.True(t, errors.Is(err, holsterrors.ErrScanTimeout), "got %v", err)
}

func TestScan_SkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "server.py"), serverSource)

	found, err := testScanner(t).Scan(context.Background(), root, 2)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestIsServerLike(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  bool
	}{
		{
			name: "source with both markers",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "server.py"), serverSource)
			},
			want: true,
		},
		{
			name: "import marker without tool registration",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "client.py"),
					"from mcp.server.fastmcp import FastMCP\nprint('client only')")
			},
			want: false,
		},
		{
			name: "requirements mentioning mcp",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "requirements.txt"), "MCP[cli]>=1.7.1\nhttpx")
			},
			want: true,
		},
		{
			name: "requirements without mcp",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "server.py"), "print('not a real server')")
				writeFile(t, filepath.Join(dir, "requirements.txt"), "some-package>=1.0.0")
			},
			want: false,
		},
		{
			name: "pyproject with mcp dependency",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "pyproject.toml"),
					"[project]\nname = \"weather\"\ndependencies = [\"mcp[cli]>=1.7.1\"]\n")
			},
			want: true,
		},
		{
			name: "pyproject without mcp",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "pyproject.toml"),
					"[project]\nname = \"widget\"\ndependencies = [\"httpx\"]\n")
			},
			want: false,
		},
		{
			name: "invalid toml falls back to substring",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "pyproject.toml"),
					"[[[broken\ndependencies = mcp")
			},
			want: true,
		},
		{
			name: "source nested below dir",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "src", "app", "main.py"), serverSource)
			},
			want: true,
		},
		{
			name:  "empty directory",
			setup: func(t *testing.T, dir string) {},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			assert.Equal(t, tt.want, testScanner(t).IsServerLike(dir))
		})
	}
}

func TestListCandidates(t *testing.T) {
	root := t.TempDir()

	// Presence-only: a plain .py file is enough, content is ignored
	writeFile(t, filepath.Join(root, "loose-scripts", "anything.py"), "print('hi')")
	writeFile(t, filepath.Join(root, "manifest-only", "requirements.txt"), "httpx")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src-layout", "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	found, err := testScanner(t).ListCandidates(context.Background(), root, 2)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "loose-scripts"),
		filepath.Join(root, "manifest-only"),
		filepath.Join(root, "src-layout"),
	}, found)
}

func TestListCandidates_MissingRoot(t *testing.T) {
	_, err := testScanner(t).ListCandidates(context.Background(), "/non/existent/path", 0)
	assert.True(t, errors.Is(err, holsterrors.ErrNotFound), "got %v", err)
}

func TestProjectRoot(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/dev/weather/src/weather", "/home/dev/weather"},
		{"/home/dev/weather/src", "/home/dev/weather"},
		{"/home/dev/weather", "/home/dev/weather"},
		{"/home/dev/src/nested/src/app", "/home/dev"},
		{"relative/src/app", "relative"},
		{"/src", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ProjectRoot(tt.path), "path %s", tt.path)
	}
}
