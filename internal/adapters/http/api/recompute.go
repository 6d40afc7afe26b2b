package api

import (
	"net/http"
)

// RecomputeHandler triggers a full rating recompute.
type RecomputeHandler struct {
	deps Dependencies
}

// NewRecomputeHandler creates a new recompute handler.
func NewRecomputeHandler(deps Dependencies) *RecomputeHandler {
	return &RecomputeHandler{deps: deps}
}

// HandlePostRecompute handles POST /recompute requests.
func (h *RecomputeHandler) HandlePostRecompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Recompute(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "recompute_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
