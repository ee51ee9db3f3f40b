package manifest

import (
	"errors"
	"fmt"
)

// ErrorKind classifies manifest loading and validation failures.
type ErrorKind int

const (
	// NotFound indicates the manifest file does not exist.
	NotFound ErrorKind = iota
	// ParseFailed indicates the manifest is not valid JSON.
	ParseFailed
	// MissingField indicates a required key is absent or empty.
	MissingField
	// InvalidField indicates a key holds a value the tool cannot use.
	InvalidField
	// MissingSourceDir indicates a required source directory is absent on disk.
	MissingSourceDir
)

// Error is a manifest-related error carrying the file and, where it
// applies, the key that caused it.
type Error struct {
	Kind    ErrorKind
	File    string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		if e.Cause != nil {
			return fmt.Sprintf("manifest %s [%s]: %s: %v", e.File, e.Field, e.Message, e.Cause)
		}
		return fmt.Sprintf("manifest %s [%s]: %s", e.File, e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("manifest %s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("manifest %s: %s", e.File, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newFieldError(kind ErrorKind, file, field, message string) *Error {
	return &Error{Kind: kind, File: file, Field: field, Message: message}
}

func newCauseError(kind ErrorKind, file, message string, cause error) *Error {
	return &Error{Kind: kind, File: file, Message: message, Cause: cause}
}

// IsKind reports whether err is (or wraps) a manifest Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var me *Error
	return errors.As(err, &me) && me.Kind == kind
}
