// Package errors provides structured error types for rdftree.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the library
//   - A clear split between configuration problems and malformed graphs
//   - User-friendly messages with optional hints
//
// # Error Codes
//
// Codes fall into three groups:
//   - configuration errors (INVALID_OVERRIDES, INVALID_CONFIG): the caller's
//     options are unusable regardless of the graph
//   - format errors (NO_ROOT, AMBIGUOUS_ROOT, ...): the graph does not describe
//     a tree that can be generated
//   - everything else: input, I/O and internal failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoRoot, "no result:this statement")
//	if errors.IsFormat(err) {
//	    // report the graph as malformed
//	}
//
//	// Attach a hint for the CLI
//	err = errors.WithHint(err, "add a result:this statement to the graph")
package errors

import (
	"errors"
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidOverrides Code = "INVALID_OVERRIDES"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Format errors: the graph cannot be turned into a tree
	ErrCodeNoRoot                     Code = "NO_ROOT"
	ErrCodeAmbiguousRoot              Code = "AMBIGUOUS_ROOT"
	ErrCodeConflictingShape           Code = "CONFLICTING_SHAPE"
	ErrCodeNonResourceRoot            Code = "NON_RESOURCE_ROOT"
	ErrCodeMultipleOrderingPredicates Code = "MULTIPLE_ORDERING_PREDICATES"
	ErrCodeMisplacedOrdering          Code = "MISPLACED_ORDERING"
	ErrCodeInvalidSortOrder           Code = "INVALID_SORT_ORDER"
	ErrCodeMalformedChain             Code = "MALFORMED_CHAIN"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var configCodes = map[Code]bool{
	ErrCodeInvalidOverrides: true,
	ErrCodeInvalidConfig:    true,
}

var formatCodes = map[Code]bool{
	ErrCodeNoRoot:                     true,
	ErrCodeAmbiguousRoot:              true,
	ErrCodeConflictingShape:           true,
	ErrCodeNonResourceRoot:            true,
	ErrCodeMultipleOrderingPredicates: true,
	ErrCodeMisplacedOrdering:          true,
	ErrCodeInvalidSortOrder:           true,
	ErrCodeMalformedChain:             true,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return configCodes[GetCode(err)]
}

// IsFormat reports whether err means the graph cannot be turned into a tree.
func IsFormat(err error) bool {
	return formatCodes[GetCode(err)]
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// WithHint decorates err with a hint shown to users alongside the message.
// The returned error still satisfies Is and GetCode.
func WithHint(err error, hint string) error {
	return crdb.WithHint(err, hint)
}

// WithHintf is like WithHint with a formatted hint.
func WithHintf(err error, format string, args ...any) error {
	return crdb.WithHintf(err, format, args...)
}

// Hints returns all hints attached to err, outermost first.
func Hints(err error) []string {
	return crdb.GetAllHints(err)
}

// FlattenHints joins all hints attached to err into one string.
func FlattenHints(err error) string {
	return crdb.FlattenHints(err)
}
