package history

import "errors"

// Sentinel kinds for history boundary conditions. Both are no-op signals
// rather than failures; callers surface them without mutating state.
var (
	ErrAtStart = errors.New("history at start")
	ErrAtEnd   = errors.New("history at end")
)
