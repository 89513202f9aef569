// Package output provides structured output and error handling for the casewalker CLI.
package output

import "errors"

// Exit codes:
// 0 = Success (including --help and --version)
// 1 = Input error (invalid JSON, unreadable or empty input, malformed records, bad config)
//     and any other failure of the run itself, such as an unwritable report
// 2 = Usage error (missing --file, unknown flag, stray arguments)
const (
	ExitSuccess    = 0
	ExitInputError = 1
	ExitUsageError = 2
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewInputError creates an error for unusable input (exit code 1).
// Use for: invalid JSON, missing or empty input file, malformed records.
func NewInputError(message string) *ExitError {
	return &ExitError{
		Code:    ExitInputError,
		Message: message,
	}
}

// NewInputErrorWithCause creates an input error wrapping an underlying cause.
func NewInputErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitInputError,
		Message: message,
		Cause:   cause,
	}
}

// NewRunError creates a non-usage failure of the run (exit code 1), such as
// a report that cannot be written.
func NewRunError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitInputError,
		Message: message,
		Cause:   cause,
	}
}

// NewUsageError creates an error for malformed command lines (exit code 2).
func NewUsageError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUsageError,
		Message: message,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUsageError for non-ExitError errors.
// Untyped errors only come out of cobra's argument handling.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUsageError
}
