package core

import "github.com/pkg/errors"

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Error string
}

// ValidationError wraps an invalid-input error together with its per-field
// details. The API layer renders it as a 400 with a field map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// shutdown signals that the web server cannot recover and should stop.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string { return s.message }

// IsShutdown reports whether err, at its cause, asks for a shutdown.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
