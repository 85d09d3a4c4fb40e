package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/duel/internal/domain/model"
)

// ChoiceHandler records comparison outcomes.
type ChoiceHandler struct {
	deps Dependencies
}

// NewChoiceHandler creates a new choice handler.
func NewChoiceHandler(deps Dependencies) *ChoiceHandler {
	return &ChoiceHandler{deps: deps}
}

// HandlePostChoice handles POST /choice requests. The body names the list,
// the two items and the outcome; "win" credits the winner, "tie" splits
// the exchange evenly.
func (h *ChoiceHandler) HandlePostChoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	var (
		cmp model.Comparison
		err error
	)
	if req.Outcome == string(model.OutcomeTie) {
		cmp, err = h.deps.Tie(r.Context(), req.List, req.Winner, req.Loser)
	} else {
		cmp, err = h.deps.Choose(r.Context(), req.List, req.Winner, req.Loser)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newComparisonResponse(req.List, cmp))
}
