// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested document was not found in the store.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueueFull indicates the notifier task queue is at capacity.
	ErrQueueFull = errors.New("notifier queue full")
)

// ValidationError represents a missing or malformed required field in a
// form submission. It is surfaced to the caller as a 400 response and
// never results in a store write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// StoreError represents a failed document store operation with context.
type StoreError struct {
	Collection string
	Op         string // get, query, set, add
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error (collection=%s, op=%s): %v", e.Collection, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new store error.
func NewStoreError(collection, op string, err error) *StoreError {
	return &StoreError{
		Collection: collection,
		Op:         op,
		Err:        err,
	}
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need a second errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
