package breach

import "errors"

var (
	ErrNotFound    = errors.New("breach not found")
	ErrDuplicate   = errors.New("breach already exists")
	ErrInvalidName = errors.New("breach name is empty")
	// ErrRegistry means a creation conflict could not be resolved by
	// re-reading: the winning row is still not visible, which points at a
	// storage inconsistency rather than a normal race.
	ErrRegistry = errors.New("breach registry inconsistency")
)
