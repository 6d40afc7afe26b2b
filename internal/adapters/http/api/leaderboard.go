package api

import (
	"net/http"
	"strconv"

	"github.com/tonpuu/riichirank/internal/domain/rating"
)

// defaultLeaderboardLimit applies when the query omits limit.
const defaultLeaderboardLimit = 25

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /leaderboard?model=M&limit=N requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	modelName := r.URL.Query().Get("model")
	if modelName == "" {
		modelName = rating.PlackettLuce.String()
	}

	n := defaultLeaderboardLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		n = v
	}
	if n > h.deps.MaxLeaderboardLimit() {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}

	rows, err := h.deps.Leaderboard(r.Context(), modelName, n)
	if err != nil {
		if isUnknownModel(err) {
			writeError(w, http.StatusBadRequest, "unknown_model", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = toEntry(row)
	}
	writeJSON(w, http.StatusOK, entries)
}
