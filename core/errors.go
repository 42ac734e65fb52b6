package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ConflictError is a rejection of an operation that would violate a
// stored invariant. Code is a stable machine-readable marker; the text
// returned by Error also contains it so string-matching clients keep
// working.
type ConflictError struct {
	Code string
	Err  error
}

func NewConflictError(code string, err error) error {
	return &ConflictError{Code: code, Err: err}
}

func (err ConflictError) Error() string {
	if err.Err == nil {
		return err.Code
	}
	return err.Code + ": " + err.Err.Error()
}

func (err ConflictError) Unwrap() error { return err.Err }

// IsConflict reports whether err is a ConflictError with the given code.
func IsConflict(err error, code string) bool {
	if cerr, ok := errors.Cause(err).(*ConflictError); ok {
		return cerr.Code == code
	}
	return false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
