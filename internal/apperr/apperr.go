// Package apperr defines the error taxonomy shared by services and
// handlers: bad caller input, model-service failure, persistence failure,
// and expired bounded waits. Handlers map these onto HTTP status codes;
// services decide per call site whether a failure is fatal or degrading.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is bad caller input. Terminal, never retried, surfaced
// as a client error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation creates a ValidationError.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ServiceError is a model-service failure: unreachable, bad status, or a
// malformed/incomplete response.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Service wraps err as a ServiceError for the given operation.
func Service(op string, err error) error {
	return &ServiceError{Op: op, Err: err}
}

// StorageError is a persistence failure in the photo store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError for the given operation.
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// TimeoutError marks a bounded wait that expired before the downstream
// call completed.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out", e.Op)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Timeout wraps err as a TimeoutError for the given operation.
func Timeout(op string, err error) error {
	return &TimeoutError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
