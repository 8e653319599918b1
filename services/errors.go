package services

import "errors"

// Failure signals for the engine boundary. Every operation that refuses an
// input wraps one of these so callers can map them without special-casing:
// validation → reject before any mutation, conflict / not found → no-op.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)
