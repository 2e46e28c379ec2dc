package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format selects the log output encoding.
type Format string

const (
	FormatText Format = "text" // colored human output, see Handler
	FormatJSON Format = "json" // one JSON object per line
)

// Config describes the logger New builds. A nil Output means os.Stderr;
// an unknown Format falls back to text.
type Config struct {
	Level  slog.Level
	Format Format
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return slog.New(newFormatHandler(cfg.Format, out, &slog.HandlerOptions{Level: cfg.Level}))
}

func newFormatHandler(f Format, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if f == FormatJSON {
		return slog.NewJSONHandler(out, opts)
	}
	return NewHandler(out, opts)
}

// Default returns the logger used before flag parsing has run: info-level
// text on stderr.
func Default() *slog.Logger {
	return New(Config{Level: slog.LevelInfo, Format: FormatText})
}

// NewDiscard returns a logger that drops everything. Used for quiet mode.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LevelFromVerbosity maps a -v flag count to a log level: 0 is info,
// 1 is debug, 2 and above go below debug for trace output.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelInfo
	case v == 1:
		return slog.LevelDebug
	}
	return slog.LevelDebug - 4
}

// ForTest returns a debug-level logger routed through t.Log, so records
// show up only on failure or under -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: testWriter{t},
	})
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
