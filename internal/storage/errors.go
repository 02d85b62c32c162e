package storage

import "errors"

// Storage errors shared by all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a write would violate a uniqueness
	// constraint, such as moving a session onto an occupied (date, hour) slot.
	ErrConflict = errors.New("conflict")
)
