package app

import "errors"

// Sentinel kinds for session errors.
var (
	// ErrInvalidChoice rejects a choice whose participants are not two
	// distinct members of the list. No state is mutated.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrNotStarted guards operations on a service before Start.
	ErrNotStarted = errors.New("service not started")
)
