package api

import (
	"errors"
	"net/http"
	"strconv"
)

// RankingsHandler serves the current ordering of a list.
type RankingsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{deps: deps, maxLimit: maxLimit}
}

// rankingsResponse is the body for GET /rankings.
type rankingsResponse struct {
	List     string  `json:"list"`
	Rankings []Entry `json:"rankings"`
}

// HandleGetRankings handles GET /rankings?list=X&limit=N requests.
// Omitting limit returns every item; limit is capped at the configured
// maximum.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	listID, err := listParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("limit must be a positive integer"))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", errors.New("limit exceeds maximum"))
			return
		}
		limit = n
	}
	entries, err := h.deps.Rankings(r.Context(), listID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankingsResponse{List: listID, Rankings: entries})
}
