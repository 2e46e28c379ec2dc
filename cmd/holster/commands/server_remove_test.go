package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestServerRemoveCommand_Metadata(t *testing.T) {
	if serverRemoveCmd.Use != "remove <name>..." {
		t.Errorf("Use = %q, want %q", serverRemoveCmd.Use, "remove <name>...")
	}

	if serverRemoveCmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if serverRemoveCmd.Flags().Lookup("force") == nil {
		t.Error("flag force should be registered")
	}
}

func TestRunServerRemove_Force(t *testing.T) {
	withTempStore(t)

	var out bytes.Buffer
	if err := runServerAdd(testCommand(), []string{"victim", "uv"}, &out); err != nil {
		t.Fatalf("add error = %v", err)
	}

	orig := serverRemoveForce
	serverRemoveForce = true
	defer func() { serverRemoveForce = orig }()

	out.Reset()
	if err := runServerRemove(testCommand(), []string{"victim"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("runServerRemove() error = %v", err)
	}

	reg, err := openRegistry(nil)
	if err != nil {
		t.Fatalf("openRegistry() error = %v", err)
	}
	active, inactive, err := reg.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(active) != 0 || len(inactive) != 0 {
		t.Error("victim should be gone from both buckets")
	}
}

func TestRunServerRemove_AbortedPrompt(t *testing.T) {
	withTempStore(t)

	var out bytes.Buffer
	if err := runServerAdd(testCommand(), []string{"keeper", "uv"}, &out); err != nil {
		t.Fatalf("add error = %v", err)
	}

	orig := serverRemoveForce
	serverRemoveForce = false
	defer func() { serverRemoveForce = orig }()

	out.Reset()
	if err := runServerRemove(testCommand(), []string{"keeper"}, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runServerRemove() error = %v", err)
	}

	if !strings.Contains(out.String(), "Aborted") {
		t.Errorf("output = %q, want an Aborted line", out.String())
	}

	reg, err := openRegistry(nil)
	if err != nil {
		t.Fatalf("openRegistry() error = %v", err)
	}
	active, _, err := reg.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, ok := active["keeper"]; !ok {
		t.Error("declined prompt should not delete anything")
	}
}

func TestRunServerRemove_UnknownName(t *testing.T) {
	withTempStore(t)

	orig := serverRemoveForce
	serverRemoveForce = true
	defer func() { serverRemoveForce = orig }()

	var out bytes.Buffer
	if err := runServerRemove(testCommand(), []string{"ghost"}, strings.NewReader(""), &out); err == nil {
		t.Fatal("removing an unknown name should fail")
	}
}
