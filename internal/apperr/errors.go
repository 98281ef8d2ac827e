// Package apperr holds the error kinds the HTTP layer maps to status codes.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks missing or malformed input (400).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an absent entity (404).
	ErrNotFound = errors.New("not found")
	// ErrNotConfigured marks a missing integration setting (503).
	ErrNotConfigured = errors.New("not configured")
)

// Validation wraps ErrValidation with a human-readable message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound for the named entity and key.
func NotFound(entity, key string) error {
	return fmt.Errorf("%s %w (%s)", entity, ErrNotFound, key)
}

// MissingConfig lists the unset environment variables.
type MissingConfig struct {
	Vars []string
}

func (e *MissingConfig) Error() string {
	return "missing required environment variables: " + strings.Join(e.Vars, ", ")
}

func (e *MissingConfig) Unwrap() error { return ErrNotConfigured }

// Message strips the sentinel prefix from validation errors so clients see
// only the field-level message.
func Message(err error) string {
	msg := err.Error()
	if errors.Is(err, ErrValidation) {
		if i := strings.Index(msg, ErrValidation.Error()+": "); i >= 0 {
			return msg[i+len(ErrValidation.Error())+2:]
		}
	}
	return msg
}
