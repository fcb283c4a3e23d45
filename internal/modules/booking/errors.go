package booking

import (
	"errors"

	"cleanbook/internal/repository"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrValidation    = errors.New("validation error")
	ErrNotCancelable = errors.New("booking cannot be cancelled")
	ErrNotFound      = errors.New("booking not found")

	// ErrCapacityExceeded surfaces the commit-time conflict unchanged so
	// callers can tell it apart from not-found and validation failures.
	ErrCapacityExceeded = repository.ErrCapacityExceeded
)
