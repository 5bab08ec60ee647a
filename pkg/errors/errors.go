// Package errors provides structured error types for vizgrid.
//
// Only unexpected conditions become errors. A missing source directory, a
// missing method directory or a missing variant file is a normal outcome and
// is modelled as an absent value by the packages that look for them.
//
// # Error Codes
//
//   - INVALID_*: configuration and name validation failures
//   - FILE_NOT_FOUND: an explicitly requested file (config, gallery) is missing
//   - IO_ERROR: unexpected file-system failures (permissions, disk errors)
//   - INTERNAL_ERROR: rendering or other unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "gallery %q has no methods", name)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", dir)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Validation errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeGalleryNotFound Code = "GALLERY_NOT_FOUND"
	ErrCodeIO              Code = "IO_ERROR"

	// Verification errors
	ErrCodeBrokenGallery Code = "BROKEN_GALLERY"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

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

// IO wraps a file-system failure on path. It returns nil when cause is nil so
// callers can write `return errors.IO(err, dir)` after a single check.
func IO(cause error, path string) error {
	if cause == nil {
		return nil
	}
	return Wrap(ErrCodeIO, cause, "%s", path)
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

// UserMessage returns a user-friendly message for the error: the full error
// text with the code prefix of every *Error in the chain removed. Context
// added by fmt.Errorf wrapping is kept.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for e := err; e != nil; e = errors.Unwrap(e) {
		if ce, ok := e.(*Error); ok {
			msg = strings.Replace(msg, string(ce.Code)+": ", "", 1)
		}
	}
	return msg
}
