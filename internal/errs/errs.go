// Package errs defines the service-level error taxonomy: not-found,
// validation and persistence failures. Handlers map these onto HTTP status
// codes; nothing else about an error crosses the request boundary.
package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup whose id does not reference an existing row.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the entity kind and id that missed.
func NotFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

// ValidationError reports rejected input. Message holds the field-by-field
// detail produced by the validator.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation wraps a validator failure into a ValidationError.
func Validation(err error) error {
	return &ValidationError{Message: err.Error()}
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError reports a transaction that could not commit. The original
// driver error stays wrapped for logs; callers only branch on the type.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps a failed storage operation.
func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
