package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fdWriter is satisfied by os.File and any writer wrapping a file descriptor.
type fdWriter interface {
	Fd() uintptr
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI color output is appropriate for w.
// Color is disabled for non-terminal writers, when NO_COLOR is set
// (https://no-color.org), or when TERM is "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(w io.Writer, isTTY bool) bool {
	if !isTTY {
		return false
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
