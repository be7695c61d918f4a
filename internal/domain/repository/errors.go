package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the requested scope,
	// including records that exist but belong to another owner.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when creating a user whose email is
	// already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)
