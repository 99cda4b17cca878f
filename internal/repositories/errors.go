package repositories

import "errors"

// Sentinel errors returned by repositories. Services and handlers match them
// with errors.Is; the wrapped text carries the offending key.
var (
	// ErrNotFound is returned when no record matches the given identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when creating a user whose ID is taken.
	ErrDuplicateID = errors.New("id already exists")
	// ErrEmailTaken is returned when creating an account whose email is taken.
	ErrEmailTaken = errors.New("email already registered")
)
