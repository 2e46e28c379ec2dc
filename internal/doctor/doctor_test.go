package doctor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunner_AggregatesSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")

	r := NewRunner(path, nil)
	report := r.Run()

	if len(report.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(report.Results))
	}

	total := report.Summary.Passed + report.Summary.Info +
		report.Summary.Warnings + report.Summary.Errors
	if total != len(report.Results) {
		t.Errorf("summary total = %d, want %d", total, len(report.Results))
	}
}

func TestStoreCheck_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	result := NewStoreCheck(path).Run()
	if result.Status != SeverityInfo {
		t.Errorf("Status = %v, want info for a missing file", result.Status)
	}
}

func TestStoreCheck_ValidStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"mcpServers":{"a":{"command":"uv","args":[]}},"unusedMcpServers":{}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	result := NewStoreCheck(path).Run()
	if result.Status != SeverityPass {
		t.Errorf("Status = %v (%s), want pass", result.Status, result.Message)
	}
}

func TestStoreCheck_CorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	result := NewStoreCheck(path).Run()
	if result.Status != SeverityError {
		t.Errorf("Status = %v, want error for corrupt store", result.Status)
	}
	if result.FixHint == "" {
		t.Error("corrupt store should carry a fix hint")
	}
}

func TestStoreCheck_OverlappingBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"mcpServers":{"dup":{"command":"uv","args":[]}},"unusedMcpServers":{"dup":{"command":"uv","args":[]}}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	result := NewStoreCheck(path).Run()
	if result.Status != SeverityError {
		t.Errorf("Status = %v, want error for overlapping buckets", result.Status)
	}
}

func TestStorePermissionCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Chmod directly so the umask cannot interfere
	if err := os.Chmod(path, 0o666); err != nil {
		t.Fatal(err)
	}

	result := NewStorePermissionCheck(path).Run()
	if result.Status != SeverityWarning {
		t.Errorf("Status = %v, want warning for 0666", result.Status)
	}

	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	result = NewStorePermissionCheck(path).Run()
	if result.Status != SeverityPass {
		t.Errorf("Status = %v, want pass for 0600", result.Status)
	}
}

func TestConfigCheck(t *testing.T) {
	if got := NewConfigCheck(nil).Run().Status; got != SeverityPass {
		t.Errorf("Status = %v, want pass for clean load", got)
	}
	if got := NewConfigCheck(os.ErrPermission).Run().Status; got != SeverityError {
		t.Errorf("Status = %v, want error for a failed load", got)
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
