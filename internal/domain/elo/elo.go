// Package elo computes rating updates for pairwise comparisons.
package elo

import "math"

// Default rating system constants.
const (
	// DefaultK is the sensitivity of a single comparison: the maximum
	// number of points that can move between two items in one update.
	DefaultK = 32.0

	// DefaultInitialRating is the rating assigned to an item that has
	// never been compared.
	DefaultInitialRating = 1500.0

	// spread is the rating difference at which the stronger item is
	// expected to win ten times as often.
	spread = 400.0
)

// Updater computes new ratings for the two sides of a comparison. It must
// be pure: no side effects, deterministic for finite inputs. Implementations
// with dynamic K scaling can be swapped in without touching callers.
type Updater interface {
	// Update returns the new ratings for a decisive comparison,
	// winner first.
	Update(winner, loser float64) (newWinner, newLoser float64)

	// UpdateTie returns the new ratings when neither side was preferred.
	UpdateTie(a, b float64) (newA, newB float64)
}

// Option applies a configuration option to the FixedK updater.
type Option func(*FixedK)

// WithKFactor overrides the sensitivity constant. Non-positive values are
// ignored.
func WithKFactor(k float64) Option {
	return func(u *FixedK) {
		if k > 0 {
			u.k = k
		}
	}
}

// FixedK implements Updater with a single configured K for every
// comparison, regardless of how often an item has been compared.
type FixedK struct {
	k float64
}

// NewFixedK creates an updater with the default K of 32.
func NewFixedK(opts ...Option) *FixedK {
	u := &FixedK{k: DefaultK}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// K returns the configured sensitivity constant.
func (u *FixedK) K() float64 {
	return u.k
}

// Update implements Updater. The winner gains exactly what the loser
// gives up, so the sum of ratings is preserved.
func (u *FixedK) Update(winner, loser float64) (float64, float64) {
	delta := u.k * (1 - Expected(winner, loser))
	return winner + delta, loser - delta
}

// UpdateTie implements Updater. A tie pulls both ratings toward each
// other: the higher-rated side loses what the lower-rated side gains.
func (u *FixedK) UpdateTie(a, b float64) (float64, float64) {
	ea := Expected(a, b)
	delta := u.k * (0.5 - ea)
	return a + delta, b - delta
}

// Expected returns the probability that an item rated a beats an item
// rated b, on the standard 400-point logistic curve.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/spread))
}
