package repository

import "errors"

var (
	// ErrNotFound is returned when a requested collection doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when a stored collection exists but cannot be decoded
	ErrCorrupt = errors.New("corrupt collection")

	// ErrInvalidName is returned when a collection name cannot be used as a storage key
	ErrInvalidName = errors.New("invalid collection name")
)
