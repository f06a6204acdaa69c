package catalog

import "errors"

var (
	// ErrNotFound is returned when the requested catalog entry does not exist.
	ErrNotFound = errors.New("game not found")

	// ErrNameExists is returned when attempting to add an entry whose name is already taken.
	ErrNameExists = errors.New("game name already exists")

	// ErrValidation is returned when the supplied entry fields are malformed or missing.
	ErrValidation = errors.New("invalid game fields")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("database error")
)
