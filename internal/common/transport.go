package common

import (
	"errors"
	"fmt"
)

// TransportStatus classifies a remote failure so callers can decide between
// retry, permanent failure, and security actions without inspecting the
// underlying client library's error types.
type TransportStatus int

const (
	StatusUnknown TransportStatus = iota
	StatusNotFound
	StatusForbidden
	StatusUnavailable
	StatusInternal
)

func (s TransportStatus) String() string {
	switch s {
	case StatusNotFound:
		return "not found"
	case StatusForbidden:
		return "forbidden"
	case StatusUnavailable:
		return "unavailable"
	case StatusInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// TransportError is returned by the transfer and courier collaborators.
// It carries a status classification plus the underlying cause.
type TransportError struct {
	Status TransportStatus
	Cause  error
}

func NewTransportError(status TransportStatus, cause error) *TransportError {
	return &TransportError{Status: status, Cause: cause}
}

func (e *TransportError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("transport error: %s", e.Status)
	}
	return fmt.Sprintf("transport error: %s: %v", e.Status, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// TransportStatusOf extracts the status classification from an error chain.
// Errors that are not TransportError report StatusUnknown.
func TransportStatusOf(err error) TransportStatus {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return StatusUnknown
}

// IsRetryable reports whether the error is a connection-class failure that a
// sync scheduler may retry. Validation and business errors are terminal.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrNotFoundRemote) || errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrCancelled) || errors.Is(err, ErrInternal) ||
		errors.Is(err, ErrFailedExpectations) {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) {
		switch te.Status {
		case StatusUnavailable, StatusUnknown:
			return true
		default:
			return false
		}
	}
	return false
}
