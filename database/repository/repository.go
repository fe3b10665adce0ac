package repository

import "errors"

// Shared store errors. Concrete repositories map driver errors onto these so
// services never see MongoDB error types.
var (
	// ErrNotFound is returned when a record does not exist under its key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when creating a record whose key already exists.
	ErrConflict = errors.New("record already exists")
)
