package selector

import "errors"

// Sentinel kinds for selection errors.
var (
	// ErrInsufficientItems means the list has fewer than two items, so
	// no pair can be formed until more are supplied.
	ErrInsufficientItems = errors.New("fewer than two items to compare")
)
