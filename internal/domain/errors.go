package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no dialog exists for the requested id.
var ErrNotFound = errors.New("dialog not found")

// ValidationError reports invalid caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "store: " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// ProviderError wraps a failure from the external translation provider.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return "translation provider: " + e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }
