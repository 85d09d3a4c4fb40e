// Package app provides the core ranking service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"sync"

	"github.com/okian/duel/internal/adapters/store"
	"github.com/okian/duel/internal/domain/elo"
	"github.com/okian/duel/internal/domain/model"
	"github.com/okian/duel/internal/domain/selector"
	"github.com/okian/duel/internal/domain/types"
	"github.com/okian/duel/pkg/logger"
	"github.com/okian/duel/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultDataDir      = "data"
	defaultHistoryLimit = 10_000
)

// Service manages one ranking session per list and exposes the session
// operations to the HTTP layer. Sessions are created lazily on first use
// and never share state, so independent lists proceed in parallel.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// Core collaborators, overridable for tests.
	ratings store.Store
	picker  selector.Selector
	updater elo.Updater

	// Configuration
	dataDir       string
	kFactor       float64
	initialRating float64
	jitter        float64
	historyLimit  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataDir sets the directory holding list and rating files.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithKFactor sets the Elo sensitivity constant.
func WithKFactor(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.kFactor = k
		}
	}
}

// WithInitialRating sets the rating for never-compared items.
func WithInitialRating(r float64) Option {
	return func(s *Service) {
		if r > 0 {
			s.initialRating = r
		}
	}
}

// WithSelectorJitter sets the partner-selection perturbation in rating
// points.
func WithSelectorJitter(jitter float64) Option {
	return func(s *Service) {
		if jitter >= 0 {
			s.jitter = jitter
		}
	}
}

// WithHistoryLimit bounds the per-session comparison log.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithStore injects a rating store, replacing the file store built at
// Start.
func WithStore(st store.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.ratings = st
		}
	}
}

// WithSelector injects a pair-selection strategy.
func WithSelector(sel selector.Selector) Option {
	return func(s *Service) {
		if sel != nil {
			s.picker = sel
		}
	}
}

// WithUpdater injects a rating updater, e.g. one with dynamic K scaling.
func WithUpdater(u elo.Updater) Option {
	return func(s *Service) {
		if u != nil {
			s.updater = u
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:      make(map[string]*Session),
		dataDir:       defaultDataDir,
		kFactor:       elo.DefaultK,
		initialRating: elo.DefaultInitialRating,
		jitter:        -1, // selector default unless configured
		historyLimit:  defaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service collaborators.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.ratings == nil {
		fs, err := store.NewFileStore(s.dataDir, store.WithInitialRating(s.initialRating))
		if err != nil {
			return err
		}
		s.ratings = fs
	}
	if s.updater == nil {
		s.updater = elo.NewFixedK(elo.WithKFactor(s.kFactor))
	}
	if s.picker == nil {
		selOpts := []selector.Option{}
		if s.jitter >= 0 {
			selOpts = append(selOpts, selector.WithJitter(s.jitter))
		}
		s.picker = selector.New(selOpts...)
	}

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.String("dataDir", s.dataDir),
		logger.Float64("kFactor", s.kFactor),
		logger.Float64("initialRating", s.initialRating),
	)
	return nil
}

// Stop shuts the service down. Rating state is persisted on every
// committed change, so there is nothing to flush; session histories are
// discarded by design.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.sessions = make(map[string]*Session)
	s.started = false
	metrics.UpdateActiveSessions(0)
	s.logger.Info(context.Background(), "ranking service stopped")
}

// NextPair returns the next pair to present for a list.
func (s *Service) NextPair(ctx context.Context, listID string) (model.Pair, error) {
	sess, err := s.session(ctx, listID)
	if err != nil {
		return model.Pair{}, err
	}
	return sess.NextPair(ctx)
}

// Choose records a decisive comparison for a list.
func (s *Service) Choose(ctx context.Context, listID, winner, loser string) (model.Comparison, error) {
	sess, err := s.session(ctx, listID)
	if err != nil {
		return model.Comparison{}, err
	}
	return sess.Choose(ctx, winner, loser)
}

// Tie records a tie for a list.
func (s *Service) Tie(ctx context.Context, listID, left, right string) (model.Comparison, error) {
	sess, err := s.session(ctx, listID)
	if err != nil {
		return model.Comparison{}, err
	}
	return sess.Tie(ctx, left, right)
}

// Undo steps a list's session one comparison backward.
func (s *Service) Undo(ctx context.Context, listID string) (model.Comparison, error) {
	sess, err := s.session(ctx, listID)
	if err != nil {
		return model.Comparison{}, err
	}
	return sess.Undo(ctx)
}

// Redo steps a list's session one comparison forward.
func (s *Service) Redo(ctx context.Context, listID string) (model.Comparison, error) {
	sess, err := s.session(ctx, listID)
	if err != nil {
		return model.Comparison{}, err
	}
	return sess.Redo(ctx)
}

// Rankings returns the current standings for a list.
func (s *Service) Rankings(ctx context.Context, listID string, limit int) ([]types.Entry, error) {
	sess, err := s.session(ctx, listID)
	if err != nil {
		return nil, err
	}
	return sess.Rankings(ctx, limit), nil
}

// Lists enumerates known list ids.
func (s *Service) Lists(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	ratings := s.ratings
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	return ratings.Lists(ctx)
}

// CreateList writes the authoritative name set for a list and drops any
// cached session so the next operation reloads against the new
// membership.
func (s *Service) CreateList(ctx context.Context, listID string, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if err := s.ratings.CreateList(ctx, listID, names); err != nil {
		return err
	}
	delete(s.sessions, listID)
	metrics.UpdateActiveSessions(len(s.sessions))
	s.logger.Info(ctx, "list created", logger.String("list", listID), logger.Int("items", len(names)))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perList := make(map[string]interface{}, len(s.sessions))
	for listID, sess := range s.sessions {
		perList[listID] = sess.Stats()
	}
	return map[string]interface{}{
		"started":        s.started,
		"activeSessions": len(s.sessions),
		"kFactor":        s.kFactor,
		"sessions":       perList,
	}
}

// session returns the active session for listID, creating it on first
// use.
func (s *Service) session(ctx context.Context, listID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[listID]
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	if ok {
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[listID]; ok {
		return sess, nil
	}
	sess, err := newSession(ctx, listID, sessionDeps{
		ratings:      s.ratings,
		picker:       s.picker,
		updater:      s.updater,
		logger:       s.logger,
		historyLimit: s.historyLimit,
	})
	if err != nil {
		return nil, err
	}
	s.sessions[listID] = sess
	metrics.UpdateActiveSessions(len(s.sessions))
	return sess, nil
}
