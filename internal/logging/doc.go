// Package logging provides structured logging for holster built on log/slog.
//
// The default handler produces TTY-optimized, colorized text output with
// automatic color detection (disabled for non-terminals, NO_COLOR, and dumb
// terminals). A JSON handler is available for machine consumption, and
// MultiHandler fans records out to multiple destinations (e.g. stderr plus a
// log file).
package logging
