package api

import (
	"context"
	"net/http"

	"github.com/okian/duel/internal/domain/model"
)

// ReviewHandler steps the comparison history backward and forward.
type ReviewHandler struct {
	deps Dependencies
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(deps Dependencies) *ReviewHandler {
	return &ReviewHandler{deps: deps}
}

// HandleUndo handles POST /undo?list=X requests.
func (h *ReviewHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.deps.Undo)
}

// HandleRedo handles POST /redo?list=X requests.
func (h *ReviewHandler) HandleRedo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.deps.Redo)
}

func (h *ReviewHandler) step(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, listID string) (model.Comparison, error)) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	listID, err := listParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	cmp, err := fn(r.Context(), listID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newComparisonResponse(listID, cmp))
}
