// Package errors defines holster's error taxonomy.
//
// Registry and store failures surface as sentinel errors (ErrNotFound,
// ErrDuplicateName, ErrCorruptConfig, ErrScanTimeout, ErrMissingName) so
// callers can branch with [Is]. The command layer wraps them in [ExitError]
// to pick the process exit code and attach a suggestion for the user:
// ExitUser (1) for bad input or configuration, ExitSystem (2) for I/O and
// environment faults.
//
// Is and As re-export the standard library helpers so command code can
// import this package alone.
package errors
