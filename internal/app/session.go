package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/duel/internal/adapters/store"
	"github.com/okian/duel/internal/domain/elo"
	"github.com/okian/duel/internal/domain/history"
	"github.com/okian/duel/internal/domain/model"
	"github.com/okian/duel/internal/domain/selector"
	"github.com/okian/duel/internal/domain/types"
	"github.com/okian/duel/pkg/logger"
	"github.com/okian/duel/pkg/metrics"
)

// Session owns the rating state and comparison history for one list.
//
// All mutating operations on one session (choose/tie/undo/redo) are
// serialized by the session mutex: they read-modify-write the rating map
// and the comparison counters, so concurrent writers would corrupt both.
// Sessions for different lists share no state and run fully in parallel.
// History is session-scoped and in-memory only; it does not survive a
// process restart.
type Session struct {
	mu sync.Mutex

	id      string
	listID  string
	list    model.RatingList
	log     *history.Log
	picker  selector.Selector
	updater elo.Updater
	ratings store.Store
	logger  logger.Logger
}

// newSession loads the rating state for listID and starts an empty
// history. A list that has never been ranked starts from defaults.
func newSession(ctx context.Context, listID string, deps sessionDeps) (*Session, error) {
	list, err := deps.ratings.Load(ctx, listID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load list %s: %w", listID, err)
	}
	if errors.Is(err, store.ErrNotFound) {
		deps.logger.Info(ctx, "no prior ratings; starting fresh",
			logger.String("list", listID),
			logger.Int("items", len(list)),
		)
	}

	return &Session{
		id:      uuid.NewString(),
		listID:  listID,
		list:    list,
		log:     history.New(history.WithLimit(deps.historyLimit)),
		picker:  deps.picker,
		updater: deps.updater,
		ratings: deps.ratings,
		logger:  deps.logger,
	}, nil
}

// sessionDeps bundles the collaborators a session needs at construction.
type sessionDeps struct {
	ratings      store.Store
	picker       selector.Selector
	updater      elo.Updater
	logger       logger.Logger
	historyLimit int
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// NextPair asks the selector for the next two items to present.
func (s *Session) NextPair(ctx context.Context) (model.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var last *model.Comparison
	if tail, ok := s.log.Tail(); ok {
		last = &tail
	}
	return s.picker.Next(ctx, s.list, last)
}

// Choose records that winner was preferred over loser: it computes the new
// ratings, applies them, appends to the history (discarding any redo
// tail), and persists before returning.
func (s *Session) Choose(ctx context.Context, winner, loser string) (model.Comparison, error) {
	return s.commit(ctx, winner, loser, model.OutcomeWin)
}

// Tie records that neither side was preferred. It flows through the same
// pipeline as Choose; the record's slots keep presentation order.
func (s *Session) Tie(ctx context.Context, left, right string) (model.Comparison, error) {
	return s.commit(ctx, left, right, model.OutcomeTie)
}

func (s *Session) commit(ctx context.Context, first, second string, outcome model.Outcome) (model.Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validatePair(first, second); err != nil {
		return model.Comparison{}, err
	}

	a, b := s.list[first], s.list[second]
	var newA, newB float64
	if outcome == model.OutcomeTie {
		newA, newB = s.updater.UpdateTie(a.Rating, b.Rating)
	} else {
		newA, newB = s.updater.Update(a.Rating, b.Rating)
	}

	c := model.Comparison{
		ID:           uuid.NewString(),
		Winner:       first,
		Loser:        second,
		Outcome:      outcome,
		WinnerBefore: a.Rating,
		LoserBefore:  b.Rating,
		WinnerAfter:  newA,
		LoserAfter:   newB,
		At:           time.Now().UTC(),
	}

	s.list.Apply(c)
	s.log.Record(c)
	if err := s.persist(ctx); err != nil {
		return model.Comparison{}, err
	}

	metrics.RecordComparison(string(outcome))
	s.logger.Debug(ctx, "comparison recorded",
		logger.String("list", s.listID),
		logger.String("winner", first),
		logger.String("loser", second),
		logger.String("outcome", string(outcome)),
		logger.Float64("winnerRating", newA),
		logger.Float64("loserRating", newB),
	)
	return c, nil
}

// Undo steps the history cursor back, reverts the undone comparison on the
// rating state, and persists. The boundary condition history.ErrAtStart
// surfaces unchanged as a no-op signal.
func (s *Session) Undo(ctx context.Context) (model.Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.log.StepBack()
	if err != nil {
		return model.Comparison{}, err
	}
	s.list.Revert(c)
	if err := s.persist(ctx); err != nil {
		return model.Comparison{}, err
	}
	metrics.RecordUndo()
	return c, nil
}

// Redo reapplies the next undone comparison, if any, and persists. The
// boundary condition history.ErrAtEnd surfaces unchanged.
func (s *Session) Redo(ctx context.Context) (model.Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.log.StepForward()
	if err != nil {
		return model.Comparison{}, err
	}
	s.list.Apply(c)
	if err := s.persist(ctx); err != nil {
		return model.Comparison{}, err
	}
	metrics.RecordRedo()
	return c, nil
}

// Rankings returns up to limit entries ordered by rating descending, name
// ascending on ties; tied ratings share a rank. limit < 1 means all.
func (s *Session) Rankings(ctx context.Context, limit int) []types.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]types.Entry, 0, len(s.list))
	for _, item := range s.list {
		entries = append(entries, types.Entry{
			Name:        item.Name,
			Rating:      item.Rating,
			Comparisons: item.Comparisons,
		})
	}
	sortEntries(entries)
	assignRanksWithTies(entries)
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

// Stats reports the session's progress counters.
func (s *Session) Stats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"sessionId": s.id,
		"items":     len(s.list),
		"recorded":  s.log.Len(),
		"cursor":    s.log.Cursor(),
		"redoable":  s.log.Redoable(),
	}
}

// validatePair enforces the choice contract: two distinct names, both
// present in the list. Violations cause no state mutation.
func (s *Session) validatePair(first, second string) error {
	if first == second {
		return fmt.Errorf("%w: %q against itself", ErrInvalidChoice, first)
	}
	for _, name := range []string{first, second} {
		if _, ok := s.list[name]; !ok {
			return fmt.Errorf("%w: unknown item %q", ErrInvalidChoice, name)
		}
	}
	return nil
}

// persist saves the full rating state. On failure the in-memory state is
// kept: it stays internally consistent but is not durable until a later
// save succeeds.
func (s *Session) persist(ctx context.Context) error {
	if err := s.ratings.Save(ctx, s.listID, s.list); err != nil {
		s.logger.Error(ctx, "persist failed",
			logger.String("list", s.listID),
			logger.Error(err),
		)
		return fmt.Errorf("persist list %s: %w", s.listID, err)
	}
	return nil
}
