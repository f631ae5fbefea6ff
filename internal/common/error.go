// Package common defines shared constants and sentinel errors used across
// the sync core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository/cache-level errors.
	ErrNotFound = errors.New("not found")

	// Asset resolution errors.
	ErrNotFoundRemote = errors.New("asset not found on remote")
	ErrValidation     = errors.New("content validation failed")

	// Delivery/pipeline errors.
	ErrCancelled          = errors.New("operation cancelled")
	ErrFailedExpectations = errors.New("failed expectations")
	ErrInternal           = errors.New("internal error")
)
