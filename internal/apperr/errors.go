// Package apperr defines the domain error kinds shared by every concept.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity  string
	Message string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Message)
}

// NewNotFound constructs a NotFoundError.
func NewNotFound(entity, message string) NotFoundError {
	return NotFoundError{Entity: entity, Message: message}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

// NotAllowedError signals that an operation would violate a concept invariant,
// e.g. a duplicate feed name or adding the same post to a feed twice.
type NotAllowedError struct {
	Message string
}

func (e NotAllowedError) Error() string {
	return fmt.Sprintf("not allowed: %s", e.Message)
}

// NewNotAllowed constructs a NotAllowedError.
func NewNotAllowed(message string) NotAllowedError {
	return NotAllowedError{Message: message}
}

// IsNotAllowed reports whether err is (or wraps) a NotAllowedError.
func IsNotAllowed(err error) bool {
	var na NotAllowedError
	return errors.As(err, &na)
}

// ValidationError signals malformed input, e.g. a notification scheduled in
// the past.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidation constructs a ValidationError.
func NewValidation(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
