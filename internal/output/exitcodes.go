// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import "errors"

// Process exit codes:
// 0 = every file converted
// 1 = user error (bad arguments, missing configuration)
// 2 = system error (unreadable directory, directory creation failed)
// 3 = the run finished but one or more conversions failed
const (
	ExitSuccess          = 0
	ExitUserError        = 1
	ExitSystemError      = 2
	ExitConversionFailed = 3
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

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemError wraps a fatal filesystem failure (exit code 2).
func NewSystemError(cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: cause.Error(), Cause: cause}
}

// NewConversionError reports that a finished run had failed conversions
// (exit code 3).
func NewConversionError(message string) *ExitError {
	return &ExitError{Code: ExitConversionFailed, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
