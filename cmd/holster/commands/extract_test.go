package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/holster/internal/extract"
)

const readmeWithConfig = "# Calculator\n\nAdd this to your config:\n\n```json\n{\"mcpServers\": {\"calculator\": {\"command\": \"uvx\", \"args\": [\"mcp-server-calculator\"]}}}\n```\n"

func newExtractProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "calculator")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "server.py"), []byte(serverSource), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readmeWithConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestExtractCommand_Metadata(t *testing.T) {
	if extractCmd.Use != "extract <directory>..." {
		t.Errorf("Use = %q, want %q", extractCmd.Use, "extract <directory>...")
	}

	if extractCmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	for _, name := range []string{"add", "timeout", "json"} {
		if extractCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q should be registered", name)
		}
	}
}

func TestRunExtract_JSON(t *testing.T) {
	dir := newExtractProject(t)

	orig := extractJSON
	extractJSON = true
	defer func() { extractJSON = orig }()

	var out bytes.Buffer
	if err := runExtract(testCommand(), []string{dir}, &out); err != nil {
		t.Fatalf("runExtract() error = %v", err)
	}

	var descriptors map[string]*extract.Descriptor
	if err := json.Unmarshal(out.Bytes(), &descriptors); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}

	d, ok := descriptors["calculator"]
	if !ok {
		t.Fatalf("descriptors should contain calculator, got %v", descriptors)
	}
	if d.Command != "uvx" {
		t.Errorf("Command = %q, want %q", d.Command, "uvx")
	}
	if len(d.Args) != 1 || d.Args[0] != "mcp-server-calculator" {
		t.Errorf("Args = %v, want [mcp-server-calculator]", d.Args)
	}
}

func TestRunExtract_Add(t *testing.T) {
	dir := newExtractProject(t)
	withTempStore(t)

	orig := extractAdd
	extractAdd = true
	defer func() { extractAdd = orig }()

	var out bytes.Buffer
	if err := runExtract(testCommand(), []string{dir}, &out); err != nil {
		t.Fatalf("runExtract() error = %v", err)
	}

	reg, err := openRegistry(nil)
	if err != nil {
		t.Fatalf("openRegistry() error = %v", err)
	}
	active, _, err := reg.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, ok := active["calculator"]; !ok {
		t.Error("calculator should be registered in the active bucket")
	}
}

func TestRunExtract_NonServerDirectory(t *testing.T) {
	dir := t.TempDir()

	origJSON := extractJSON
	extractJSON = false
	defer func() { extractJSON = origJSON }()

	var out bytes.Buffer
	if err := runExtract(testCommand(), []string{dir}, &out); err != nil {
		t.Fatalf("runExtract() error = %v", err)
	}
	if !strings.Contains(out.String(), "No server projects found") {
		t.Errorf("output = %q, want the empty notice", out.String())
	}
}
