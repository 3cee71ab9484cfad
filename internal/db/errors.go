package db

import "errors"

var (
	// ErrStorageUnavailable means the database file could not be opened or read.
	// Persistence should be treated as failed for the rest of the session.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSchema means the stored schema is newer than this build or a migration step failed.
	ErrSchema = errors.New("schema error")
)
