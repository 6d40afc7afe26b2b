package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/tonpuu/riichirank/internal/adapters/repository"
	"github.com/tonpuu/riichirank/internal/domain/rating"
)

// RankHandler handles per-player rank requests.
type RankHandler struct {
	deps Dependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps Dependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{player_id}?model=M requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/rank/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	playerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	modelName := r.URL.Query().Get("model")
	if modelName == "" {
		modelName = rating.PlackettLuce.String()
	}

	row, err := h.deps.PlayerRank(r.Context(), modelName, playerID)
	if err != nil {
		switch {
		case isUnknownModel(err):
			writeError(w, http.StatusBadRequest, "unknown_model", err)
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, toEntry(row))
}

// isUnknownModel translates the engine's model sentinel to a client error.
func isUnknownModel(err error) bool {
	return errors.Is(err, rating.ErrUnknownModel)
}
