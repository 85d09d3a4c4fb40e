package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// ListsHandler enumerates and creates ranking lists.
type ListsHandler struct {
	deps Dependencies
}

// NewListsHandler creates a new lists handler.
func NewListsHandler(deps Dependencies) *ListsHandler {
	return &ListsHandler{deps: deps}
}

// createListRequest is the body for POST /lists. Items may arrive either
// as a JSON array or as a newline-separated blob pasted from a text file.
type createListRequest struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
	Text  string   `json:"text"`
}

func (c *createListRequest) names() []string {
	if len(c.Items) > 0 {
		return c.Items
	}
	var names []string
	for _, line := range strings.Split(c.Text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}

type listsResponse struct {
	Lists []string `json:"lists"`
}

type createListResponse struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// HandleLists handles GET and POST /lists requests.
func (h *ListsHandler) HandleLists(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ListsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	lists, err := h.deps.Lists(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listsResponse{Lists: lists})
}

func (h *ListsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	} else {
		// Plain newline-separated upload; the list name rides the query.
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		req.Text = string(raw)
	}
	if req.Name == "" {
		req.Name = strings.TrimSpace(r.URL.Query().Get("name"))
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing list name"))
		return
	}
	names := req.names()
	if err := h.deps.CreateList(r.Context(), req.Name, names); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createListResponse{Name: req.Name, Items: len(names)})
}
