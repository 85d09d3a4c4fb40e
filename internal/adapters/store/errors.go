package store

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrNotFound means the list has never been ranked. Callers recover
	// by starting from all-default ratings.
	ErrNotFound = errors.New("no ratings for list")

	// ErrNoList means the authoritative item-name list does not exist.
	ErrNoList = errors.New("unknown list")

	// ErrInvalidListID rejects ids that do not form a safe file name.
	ErrInvalidListID = errors.New("invalid list id")

	// ErrCorruptData marks an unparsable rating file.
	ErrCorruptData = errors.New("corrupt rating file")

	// ErrEmptyList rejects list uploads with no usable names.
	ErrEmptyList = errors.New("list has no items")
)
