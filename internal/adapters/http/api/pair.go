package api

import (
	"net/http"

	"github.com/okian/duel/internal/domain/model"
)

// PairHandler serves the next pair to compare.
type PairHandler struct {
	deps Dependencies
}

// NewPairHandler creates a new pair handler.
func NewPairHandler(deps Dependencies) *PairHandler {
	return &PairHandler{deps: deps}
}

// pairResponse is the body for GET /pair.
type pairResponse struct {
	List string     `json:"list"`
	Pair model.Pair `json:"pair"`
}

// HandleGetPair handles GET /pair?list=X requests.
func (h *PairHandler) HandleGetPair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	listID, err := listParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	pair, err := h.deps.NextPair(r.Context(), listID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pairResponse{List: listID, Pair: pair})
}
