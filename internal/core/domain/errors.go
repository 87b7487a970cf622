// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError through errors.Is
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an id does not resolve to a record
	ErrNotFound = errors.New("medicine not found")
	// ErrStoreUnavailable wraps any failure of the record store
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports a missing or out-of-range field
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StoreError tags err as a store failure while keeping the driver error in
// the chain. Not-found results pass through unchanged.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStoreUnavailable, err)
}
