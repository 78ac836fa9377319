package ingest

import "errors"

var (
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrUpstream means the oracle was unreachable, rate-limited or
	// returned a payload that could not be parsed. Safe to retry.
	ErrUpstream = errors.New("breach oracle unavailable")
)
