// Package model contains domain records passed between layers.
package model

import "time"

// Outcome distinguishes a decisive comparison from a tie.
type Outcome string

// Recognized comparison outcomes.
const (
	OutcomeWin Outcome = "win"
	OutcomeTie Outcome = "tie"
)

// Item is the rating state of a single named entry in a list.
type Item struct {
	Name        string
	Rating      float64
	Comparisons int
}

// Pair is the two item names presented for one comparison.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Comparison is an immutable record of one recorded choice. For a tie the
// Winner/Loser slots simply name the two sides; the before/after ratings
// carry the actual adjustment either way.
type Comparison struct {
	ID           string
	Winner       string
	Loser        string
	Outcome      Outcome
	WinnerBefore float64
	LoserBefore  float64
	WinnerAfter  float64
	LoserAfter   float64
	At           time.Time
}

// Pair returns the two participants of the comparison in presentation order.
func (c Comparison) Pair() Pair {
	return Pair{Left: c.Winner, Right: c.Loser}
}

// SamePair reports whether the comparison involved exactly the two names in
// p, in either order.
func (c Comparison) SamePair(p Pair) bool {
	return (c.Winner == p.Left && c.Loser == p.Right) ||
		(c.Winner == p.Right && c.Loser == p.Left)
}

// RatingList maps item name to its rating state for one list. It is owned
// by exactly one session at a time; callers must not share it across
// goroutines without external synchronization.
type RatingList map[string]Item

// NewRatingList builds a list where every name starts at the initial rating
// with zero comparisons. Duplicate names collapse to one entry.
func NewRatingList(names []string, initialRating float64) RatingList {
	l := make(RatingList, len(names))
	for _, name := range names {
		l[name] = Item{Name: name, Rating: initialRating}
	}
	return l
}

// Apply writes the comparison's after-ratings into the list and increments
// both participants' comparison counts. It is the exact inverse of Revert.
func (l RatingList) Apply(c Comparison) {
	w := l[c.Winner]
	w.Name = c.Winner
	w.Rating = c.WinnerAfter
	w.Comparisons++
	l[c.Winner] = w

	lo := l[c.Loser]
	lo.Name = c.Loser
	lo.Rating = c.LoserAfter
	lo.Comparisons++
	l[c.Loser] = lo
}

// Revert restores the comparison's before-ratings and decrements both
// participants' comparison counts.
func (l RatingList) Revert(c Comparison) {
	w := l[c.Winner]
	w.Rating = c.WinnerBefore
	w.Comparisons--
	l[c.Winner] = w

	lo := l[c.Loser]
	lo.Rating = c.LoserBefore
	lo.Comparisons--
	l[c.Loser] = lo
}

// Clone returns an independent copy of the list.
func (l RatingList) Clone() RatingList {
	out := make(RatingList, len(l))
	for name, item := range l {
		out[name] = item
	}
	return out
}
