package entities

import (
	"errors"
	"fmt"
)

// Code is a machine-readable pipeline error code
type Code string

const (
	// CodeSourceUnavailable means the input source could not be opened or read
	CodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	// CodeMalformedRow means a row violated the input schema
	CodeMalformedRow Code = "MALFORMED_ROW"
	// CodeInvalidDate means a date cell did not match the YYYY-MM-DD layout
	CodeInvalidDate Code = "INVALID_DATE"
	// CodeInvalidRecord means a row parsed but failed record validation
	CodeInvalidRecord Code = "INVALID_RECORD"
)

// PipelineError is the pipeline error type with structured row context.
// Row is 1-based counting the header; zero means no row applies.
type PipelineError struct {
	Code    Code
	Message string
	Row     int
	Raw     string
	Cause   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s (row %d: %q)", e.Message, e.Row, e.Raw)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *PipelineError) Is(target error) bool {
	if t, ok := target.(*PipelineError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a pipeline error with a code and message.
func NewError(code Code, message string) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a pipeline error that wraps an underlying cause.
func WrapError(code Code, message string, cause error) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// RowError creates a pipeline error pointing at a specific input row.
func RowError(code Code, message string, row int, raw string) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
		Row:     row,
		Raw:     raw,
	}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
