package errors

import (
	"fmt"
)

// ParseError represents a result or configuration decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or result-file validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WriteError represents a failure persisting a generated report.
type WriteError struct {
	Destination string
	Err         error
}

// NewWriteError constructs a WriteError for the given destination.
func NewWriteError(destination string, err error) error {
	return &WriteError{Destination: destination, Err: err}
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	if e.Destination != "" {
		return fmt.Sprintf("write error [%s]: %v", e.Destination, e.Err)
	}
	return fmt.Sprintf("write error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *WriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
