package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrNotFound is returned when the requested group does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a write would break a group invariant,
	// such as a duplicate ID or a blank group name.
	ErrInvalidInput = errors.New("invalid input")
)
