package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange  = errors.New("invalid date range")
	ErrAssetNotFound = errors.New("asset not found")
)

// ValidationError is returned before any I/O when an input is unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ExternalSourceError is returned by a quote source once its retry budget
// is spent, or immediately on a failure that retrying cannot fix.
type ExternalSourceError struct {
	Source   string
	Symbol   string
	Attempts int
	Err      error
}

func (e *ExternalSourceError) Error() string {
	return fmt.Sprintf("%s request for %s failed after %d attempt(s): %v", e.Source, e.Symbol, e.Attempts, e.Err)
}

func (e *ExternalSourceError) Unwrap() error {
	return e.Err
}

// StoreError wraps a failed read or write against the history store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsExternalSourceError(err error) bool {
	var e *ExternalSourceError
	return errors.As(err, &e)
}
