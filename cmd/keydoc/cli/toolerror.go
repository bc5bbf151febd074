// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors so that scripts wrapping the
// tool can tell bad input from a failure of the tool itself without
// parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// wrong argument count, unknown format names, a stream or text
	// document that does not parse. The caller should fix the input
	// and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryInternal indicates an unexpected error: I/O failures,
	// encoder limits on data the tool produced itself. The caller
	// should report the error rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands. It wraps
// an inner error, preserving the full error chain (so errors.Is still
// finds keydoc sentinels) while adding category metadata.
//
// Use the category-specific constructors rather than constructing
// ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// ExitStatus returns the process exit status for an error returned by
// [Command.Execute], and whether main should print it. Nil is 0. An
// [ExitError] carries its own code and was already reported. Validation
// errors exit 2 so that scripts can tell bad input from a stream that
// is merely not canonical (1, via ExitError); everything else exits 1.
func ExitStatus(err error) (code int, report bool) {
	if err == nil {
		return 0, false
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code, false
	}
	var tool *ToolError
	if errors.As(err, &tool) && tool.Category == CategoryValidation {
		return 2, true
	}
	return 1, true
}
