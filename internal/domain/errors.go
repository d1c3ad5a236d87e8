package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for catalog operations
var (
	// ErrNotFound indicates the requested item (or export content) does not exist
	ErrNotFound = errors.New("not found")

	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("collection backend is unreachable")

	// ErrInvalidInput indicates the request was rejected before or by the backend
	ErrInvalidInput = errors.New("invalid input")
)

// StatusError is a non-2xx response from the backend
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

// Is maps status codes onto the sentinel errors
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrInvalidInput:
		return e.Code == http.StatusBadRequest
	}
	return false
}

// ReloadError reports a mutation that succeeded but whose follow-up re-fetch failed
type ReloadError struct {
	Op  string
	Err error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("%s succeeded but reload failed: %v", e.Op, e.Err)
}

func (e *ReloadError) Unwrap() error { return e.Err }

// Invalid builds an ErrInvalidInput with a reason
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
