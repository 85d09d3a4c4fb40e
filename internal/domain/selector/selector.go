// Package selector chooses the next pair of items to present.
package selector

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/okian/duel/internal/domain/model"
	"github.com/okian/duel/pkg/metrics"
)

// Default selection configuration constants.
const (
	// defaultJitter is the random perturbation, in rating points, added
	// to the partner distance so the same near-tied pair is not
	// presented deterministically every time.
	defaultJitter = 8.0
)

// Option applies a configuration option to the InfoGainSelector.
type Option func(*InfoGainSelector)

// WithRand sets the random source. Tests inject a seeded source for
// deterministic selection.
func WithRand(rng *rand.Rand) Option {
	return func(s *InfoGainSelector) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithJitter sets the rating-point perturbation applied when picking the
// closest-rated partner. Negative values are ignored.
func WithJitter(jitter float64) Option {
	return func(s *InfoGainSelector) {
		if jitter >= 0 {
			s.jitter = jitter
		}
	}
}

// Selector picks two distinct items to present next given the current
// rating state and the most recent applied comparison. The exact weighting
// of closeness against comparison count is a tunable policy, so the
// capability is an interface with a single method.
type Selector interface {
	Next(ctx context.Context, list model.RatingList, last *model.Comparison) (model.Pair, error)
}

// InfoGainSelector implements Selector favoring informative comparisons:
// untried items first, then rarely-compared items against close-rated
// partners.
type InfoGainSelector struct {
	rng    *rand.Rand
	jitter float64
}

// New creates a selector seeded from the wall clock.
func New(opts ...Option) *InfoGainSelector {
	s := &InfoGainSelector{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // selection jitter, not security sensitive
		jitter: defaultJitter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next implements Selector.
//
// Bootstrap phase: while two or more items have never been compared, the
// pair is drawn from those. Once fewer than two remain untried, the
// primary slot is drawn weighted toward low comparison counts (an untried
// leftover always wins the draw) and the partner minimizes rating distance
// under a small random jitter. The pair at the history tail is never
// re-presented when any alternative exists.
func (s *InfoGainSelector) Next(ctx context.Context, list model.RatingList, last *model.Comparison) (model.Pair, error) {
	start := time.Now()
	defer func() {
		metrics.RecordSelectorLatency(float64(time.Since(start).Microseconds()) / 1e3)
	}()

	if err := ctx.Err(); err != nil {
		return model.Pair{}, err
	}
	if len(list) < 2 {
		metrics.RecordErrorByComponent("selector", "insufficient_items")
		return model.Pair{}, ErrInsufficientItems
	}

	// Deterministic base order keeps selection reproducible under a
	// seeded source.
	names := make([]string, 0, len(list))
	for name := range list {
		names = append(names, name)
	}
	sort.Strings(names)

	if pair, ok := s.bootstrapPair(list, names, last); ok {
		return pair, nil
	}

	primary := s.pickPrimary(list, names)
	partner := s.pickPartner(list, names, primary, last)
	return model.Pair{Left: primary, Right: partner}, nil
}

// bootstrapPair returns a pair of untried items while at least two remain.
func (s *InfoGainSelector) bootstrapPair(list model.RatingList, names []string, last *model.Comparison) (model.Pair, bool) {
	fresh := make([]string, 0, len(names))
	for _, name := range names {
		if list[name].Comparisons == 0 {
			fresh = append(fresh, name)
		}
	}
	if len(fresh) < 2 {
		return model.Pair{}, false
	}

	i := s.rng.Intn(len(fresh))
	j := s.rng.Intn(len(fresh) - 1)
	if j >= i {
		j++
	}
	pair := model.Pair{Left: fresh[i], Right: fresh[j]}
	if last != nil && last.SamePair(pair) && len(fresh) > 2 {
		// Rotate one slot to avoid the trivial re-ask after an undo.
		j = (j + 1) % len(fresh)
		if j == i {
			j = (j + 1) % len(fresh)
		}
		pair.Right = fresh[j]
	}
	return pair, true
}

// pickPrimary draws one item weighted by 1/(1+comparisons), so
// rarely-compared items are favored without starving the rest. A last
// untried item always takes the slot.
func (s *InfoGainSelector) pickPrimary(list model.RatingList, names []string) string {
	fresh := make([]string, 0, 1)
	for _, name := range names {
		if list[name].Comparisons == 0 {
			fresh = append(fresh, name)
		}
	}
	if len(fresh) > 0 {
		return fresh[s.rng.Intn(len(fresh))]
	}

	total := 0.0
	for _, name := range names {
		total += 1 / float64(1+list[name].Comparisons)
	}
	target := s.rng.Float64() * total
	for _, name := range names {
		target -= 1 / float64(1+list[name].Comparisons)
		if target <= 0 {
			return name
		}
	}
	return names[len(names)-1]
}

// pickPartner chooses the remaining item closest in rating to primary,
// perturbed by the configured jitter, skipping the tail pair when another
// candidate exists.
func (s *InfoGainSelector) pickPartner(list model.RatingList, names []string, primary string, last *model.Comparison) string {
	best, runnerUp := "", ""
	bestScore, runnerUpScore := math.Inf(1), math.Inf(1)
	base := list[primary].Rating

	for _, name := range names {
		if name == primary {
			continue
		}
		score := math.Abs(list[name].Rating-base) + s.jitter*s.rng.Float64()
		switch {
		case score < bestScore:
			runnerUp, runnerUpScore = best, bestScore
			best, bestScore = name, score
		case score < runnerUpScore:
			runnerUp, runnerUpScore = name, score
		}
	}

	if last != nil && runnerUp != "" && last.SamePair(model.Pair{Left: primary, Right: best}) {
		return runnerUp
	}
	return best
}
