// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/duel/internal/adapters/store"
	"github.com/okian/duel/internal/app"
	"github.com/okian/duel/internal/domain/history"
	"github.com/okian/duel/internal/domain/model"
	"github.com/okian/duel/internal/domain/selector"
	"github.com/okian/duel/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the session service.
type Dependencies interface {
	NextPair(ctx context.Context, listID string) (model.Pair, error)
	Choose(ctx context.Context, listID, winner, loser string) (model.Comparison, error)
	Tie(ctx context.Context, listID, left, right string) (model.Comparison, error)
	Undo(ctx context.Context, listID string) (model.Comparison, error)
	Redo(ctx context.Context, listID string) (model.Comparison, error)
	Rankings(ctx context.Context, listID string, limit int) ([]types.Entry, error)
	Lists(ctx context.Context) ([]string, error)
	CreateList(ctx context.Context, listID string, names []string) error
}

// Entry mirrors the read shape returned by ranking queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	pairHandler     *PairHandler
	choiceHandler   *ChoiceHandler
	reviewHandler   *ReviewHandler
	rankingsHandler *RankingsHandler
	listsHandler    *ListsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxRankingLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		pairHandler:     NewPairHandler(deps),
		choiceHandler:   NewChoiceHandler(deps),
		reviewHandler:   NewReviewHandler(deps),
		rankingsHandler: NewRankingsHandler(deps, maxRankingLimit),
		listsHandler:    NewListsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/pair", MetricsMiddleware(s.pairHandler.HandleGetPair, "pair"))
	mux.HandleFunc("/choice", MetricsMiddleware(s.choiceHandler.HandlePostChoice, "choice"))
	mux.HandleFunc("/undo", MetricsMiddleware(s.reviewHandler.HandleUndo, "undo"))
	mux.HandleFunc("/redo", MetricsMiddleware(s.reviewHandler.HandleRedo, "redo"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/lists", MetricsMiddleware(s.listsHandler.HandleLists, "lists"))
}

// choiceRequest is the body for POST /choice.
type choiceRequest struct {
	List    string `json:"list"`
	Winner  string `json:"winner"`
	Loser   string `json:"loser"`
	Outcome string `json:"outcome"`
}

func (c *choiceRequest) validate() error {
	if c.Outcome == "" {
		c.Outcome = string(model.OutcomeWin)
	}
	switch {
	case strings.TrimSpace(c.List) == "":
		return errors.New("missing list")
	case strings.TrimSpace(c.Winner) == "":
		return errors.New("missing winner")
	case strings.TrimSpace(c.Loser) == "":
		return errors.New("missing loser")
	case c.Outcome != string(model.OutcomeWin) && c.Outcome != string(model.OutcomeTie):
		return errors.New(`outcome must be "win" or "tie"`)
	}
	return nil
}

// comparisonResponse is the acknowledgment for choice/undo/redo.
type comparisonResponse struct {
	ID           string     `json:"id"`
	List         string     `json:"list"`
	Pair         model.Pair `json:"pair"`
	Outcome      string     `json:"outcome"`
	WinnerRating float64    `json:"winner_rating"`
	LoserRating  float64    `json:"loser_rating"`
}

func newComparisonResponse(listID string, c model.Comparison) comparisonResponse {
	return comparisonResponse{
		ID:           c.ID,
		List:         listID,
		Pair:         c.Pair(),
		Outcome:      string(c.Outcome),
		WinnerRating: c.WinnerAfter,
		LoserRating:  c.LoserAfter,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain sentinels to HTTP status codes.
// History boundaries and pair exhaustion are surfaced as 409 no-op
// signals, never as server failures.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidChoice):
		writeError(w, http.StatusBadRequest, "invalid_choice", err)
	case errors.Is(err, store.ErrInvalidListID), errors.Is(err, store.ErrEmptyList):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, store.ErrNoList):
		writeError(w, http.StatusNotFound, "unknown_list", err)
	case errors.Is(err, selector.ErrInsufficientItems):
		writeError(w, http.StatusConflict, "insufficient_items", err)
	case errors.Is(err, history.ErrAtStart):
		writeError(w, http.StatusConflict, "at_start", err)
	case errors.Is(err, history.ErrAtEnd):
		writeError(w, http.StatusConflict, "at_end", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// listParam extracts and validates the ?list query parameter.
func listParam(r *http.Request) (string, error) {
	listID := strings.TrimSpace(r.URL.Query().Get("list"))
	if listID == "" {
		return "", errors.New("missing list parameter")
	}
	return listID, nil
}
