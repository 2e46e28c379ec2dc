package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler is a human-oriented slog.Handler for terminal output. Records
// are rendered on one line with a kitchen-clock timestamp, a colored
// level tag when the writer is a color-capable TTY, and key=value attrs.
type Handler struct {
	opts     slog.HandlerOptions
	out      io.Writer
	mu       *sync.Mutex
	useColor bool
	attrs    []slog.Attr
	groups   []string

	levelColors map[slog.Level]*color.Color
	timeColor   *color.Color
	keyColor    *color.Color
}

// NewHandler creates a terminal text handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	h := &Handler{
		opts:     *opts,
		out:      out,
		mu:       &sync.Mutex{},
		useColor: SupportsColor(out),
	}
	if h.useColor {
		h.timeColor = color.New(color.FgHiBlack)
		h.keyColor = color.New(color.FgCyan)
		h.levelColors = map[slog.Level]*color.Color{
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		}
	}
	return h
}

// Enabled reports whether records at level should be handled.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

// Handle renders the record into a single line and writes it atomically.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		t := r.Time.Format(time.Kitchen)
		if h.timeColor != nil {
			t = h.timeColor.Sprint(t)
		}
		buf.WriteString(t)
		buf.WriteByte(' ')
	}

	level := r.Level.String()
	if c := h.levelColor(r.Level); c != nil {
		level = c.Sprint(level)
	}
	fmt.Fprintf(&buf, "%-5s ", level)

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) levelColor(level slog.Level) *color.Color {
	if !h.useColor {
		return nil
	}
	switch {
	case level >= slog.LevelError:
		return h.levelColors[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.levelColors[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return h.levelColors[slog.LevelInfo]
	default:
		return h.levelColors[slog.LevelDebug]
	}
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	if h.keyColor != nil {
		key = h.keyColor.Sprint(key)
	}
	fmt.Fprintf(buf, " %s=%v", key, a.Value.Any())
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	next.attrs = append(next.attrs, attrs...)
	return &next
}

// WithGroup returns a handler that qualifies attr keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}
