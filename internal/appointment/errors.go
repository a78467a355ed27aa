package appointment

import (
	"errors"
	"fmt"
)

var (
	ErrRequiredField     = errors.New("field is required")
	ErrOutOfRange        = errors.New("value out of range")
	ErrBadFormat         = errors.New("value does not match the expected format")
	ErrInvalidDate       = errors.New("not a valid calendar date")
	ErrInvalidEnum       = errors.New("value is not one of the allowed options")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotFound          = errors.New("appointment not found")
)

// FieldError is a validation failure on a single draft field. It wraps one of
// the sentinel taxonomy errors so callers can classify with errors.Is.
type FieldError struct {
	Field   string
	Message string
	kind    error
}

func newFieldError(field string, kind error, message string) *FieldError {
	return &FieldError{Field: field, Message: message, kind: kind}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.kind
}

// FieldErrors maps field name to a human-readable message. An empty set means
// the draft is valid. It is rebuilt wholesale on every full validation pass so
// a cleared field never keeps a stale error.
type FieldErrors map[string]string

func (fe FieldErrors) add(err *FieldError) {
	fe[err.Field] = err.Message
}

// Empty reports whether the set contains no errors.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// ValidationError carries a full FieldErrors set across the service boundary
// so handlers can render per-field messages instead of a single string.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft failed validation on %d field(s)", len(e.Fields))
}
