package repository

import "errors"

var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a guarded update observed a concurrent
	// modification: the record's current phase no longer matches the one
	// the caller validated against. Retrying the whole operation is safe.
	ErrConflict = errors.New("conflicting concurrent update")
)
