// Package common defines shared constants and sentinel errors used across
// the resolver components. Callers should use errors.Is/errors.As to match
// these values; the HTTP boundary maps them to status codes.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrConflict = errors.New("conflict")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")

	// Missing or unusable required configuration. Fail fast, never retried.
	ErrConfig = errors.New("configuration error")
)

// FieldError is a single validation failure with a stable machine key for
// i18n and the arguments the translated message interpolates.
type FieldError struct {
	Key  string
	Args []any
}

func (e FieldError) Error() string {
	if len(e.Args) == 0 {
		return e.Key
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = fmt.Sprint(a)
	}
	return e.Key + ": " + strings.Join(parts, ", ")
}

// ValidationError carries all field errors collected during a validation
// pass. It is returned instead of the first failure so the caller can report
// every problem in one response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	keys := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		keys[i] = f.Key
	}
	return "validation failed: " + strings.Join(keys, ", ")
}

// NewValidationError wraps the given field errors, returning nil when the
// list is empty so callers can return it directly.
func NewValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ConflictError is returned when an update would make a link response
// indistinguishable from another current or historical response.
type ConflictError struct {
	// Identity is the human-readable identity of the colliding response,
	// its target URL plus link type.
	Identity string
}

func (e *ConflictError) Error() string {
	return "duplicate link: " + e.Identity
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
