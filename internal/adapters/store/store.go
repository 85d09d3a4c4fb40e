// Package store defines the rating persistence contract and its
// file-backed implementation.
package store

import (
	"context"

	"github.com/okian/duel/internal/domain/model"
)

// Store provides durable access to per-list rating state. The item-name
// source list is authoritative for membership: Load creates missing items
// with defaults and drops stored entries no longer named by the source.
type Store interface {
	// Names returns the authoritative item names for a list.
	// Returns ErrNoList if the list is unknown.
	Names(ctx context.Context, listID string) ([]string, error)

	// Load reads the persisted ratings for a list, merged against the
	// authoritative names. If the list has never been ranked it returns
	// ErrNotFound together with a fully defaulted list, which the caller
	// may use as-is.
	Load(ctx context.Context, listID string) (model.RatingList, error)

	// Save atomically persists the full mapping. Failures surface to the
	// caller and are never retried internally.
	Save(ctx context.Context, listID string, list model.RatingList) error

	// CreateList writes the authoritative name set for a new or existing
	// list.
	CreateList(ctx context.Context, listID string, names []string) error

	// Lists enumerates the known list ids.
	Lists(ctx context.Context) ([]string, error)
}
