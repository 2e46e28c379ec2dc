package commands

import (
	"testing"
	"time"

	mcp "github.com/localrivet/gomcp/server"

	"github.com/thoreinstein/holster/internal/logging"
	"github.com/thoreinstein/holster/internal/registry"
	"github.com/thoreinstein/holster/internal/store"
)

func TestServeCommand_Metadata(t *testing.T) {
	if serveCmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", serveCmd.Use, "serve")
	}

	if serveCmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestRegisterTools(t *testing.T) {
	path := withTempStore(t)

	st := store.New(path)
	if err := st.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	reg := registry.New(st, logging.NewDiscard())

	// Registration must not panic; handler wiring is exercised through the
	// registry tests the handlers delegate to.
	registerTools(mcp.NewServer("holster-test"), reg, logging.NewDiscard())
}

type fakeToolRequest struct {
	done chan struct{}
}

func (f *fakeToolRequest) Done() <-chan struct{} { return f.done }

func TestToolScanContext_ClientCancellation(t *testing.T) {
	req := &fakeToolRequest{done: make(chan struct{})}

	scanCtx, cancel := toolScanContext(req)
	defer cancel()

	close(req.done)

	select {
	case <-scanCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("scan context was not canceled after the tool request finished")
	}
}
