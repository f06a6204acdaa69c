package accounts

import "errors"

var (
	// ErrNotFound is returned when the requested account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrUsernameTaken is returned when provisioning an account whose username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrPasswordMismatch is returned when the password and its confirmation copy differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrUnauthorized is returned when credential verification fails.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNewPasswordRequired is returned when changing hash scheme parameters without supplying a new password.
	ErrNewPasswordRequired = errors.New("changing hash settings requires a new password")

	// ErrUnknownAlgorithm is returned when the named digest function is not in the supported set.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

	// ErrInvalidRehashCount is returned when the iteration count is not a positive integer.
	ErrInvalidRehashCount = errors.New("rehash count must be positive")

	// ErrInvalidUsername is returned when the supplied username is empty.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrNotRemovable is returned when attempting to remove an account marked non-removable.
	ErrNotRemovable = errors.New("account is not removable")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("database error")
)
