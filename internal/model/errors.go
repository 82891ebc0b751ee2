package model

import "errors"

// Sentinel errors returned by the data model and the tracker. Callers
// branch with errors.Is; the CLI layer decides how to print them.
var (
	// ErrNotFound means the referenced project, entry, week or day
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means an item with the same key already exists.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidInput means the request is malformed, e.g. a day
	// submission with no fields set.
	ErrInvalidInput = errors.New("invalid input")
)
