package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
// Not-found is not part of the set: point lookups report absence as a
// boolean, and callers decide how to translate it.
var (
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrDuplicateDay indicates an entry already exists for the calendar day.
	ErrDuplicateDay = errors.New("duplicate_day")
)
