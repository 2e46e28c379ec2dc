package errors

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitUser    = 1 // invalid input or configuration
	ExitSystem  = 2 // I/O, permissions, environment
)

// Sentinels for registry and store failure conditions.
var (
	// ErrNotFound means the named server or directory does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName means a server with that name is already registered.
	ErrDuplicateName = errors.New("duplicate server name")

	// ErrCorruptConfig means the persisted store document is malformed.
	ErrCorruptConfig = errors.New("corrupt config")

	// ErrScanTimeout means a directory scan exceeded its deadline.
	ErrScanTimeout = errors.New("scan timed out")

	// ErrMissingName means a server name was required and absent.
	ErrMissingName = errors.New("name is required")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ExitError carries the exit code a failed command should produce, plus an
// optional suggestion printed under the error message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError wraps err with an exit code. A nil err is allowed when only
// the code matters.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError marks err as the user's to fix, with a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError marks err as an environment fault, with a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
