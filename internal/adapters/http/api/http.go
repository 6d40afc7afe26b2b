// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tonpuu/riichirank/internal/adapters/repository"
	"github.com/tonpuu/riichirank/internal/importer"
)

// Dependencies bundles what the handlers need from the application service.
type Dependencies interface {
	// Leaderboard returns the stored top-n rows for a model.
	Leaderboard(ctx context.Context, model string, n int) ([]repository.LeaderboardRow, error)

	// PlayerRank returns one player's stored rank and score under a model.
	PlayerRank(ctx context.Context, model string, playerID int64) (repository.LeaderboardRow, error)

	// ImportCSV ingests a score sheet export and recomputes ratings.
	ImportCSV(ctx context.Context, r io.Reader) (importer.Report, error)

	// Recompute rebuilds all leaderboards from the stored history.
	Recompute(ctx context.Context) error

	// Stats returns a monitoring snapshot.
	Stats(ctx context.Context) map[string]interface{}

	// MaxLeaderboardLimit returns the configured leaderboard size cap.
	MaxLeaderboardLimit() int
}

// Entry mirrors the JSON shape of one leaderboard row.
type Entry struct {
	Rank     int     `json:"rank"`
	PlayerID int64   `json:"player_id"`
	Name     string  `json:"name,omitempty"`
	Score    float64 `json:"score"`
}

func toEntry(row repository.LeaderboardRow) Entry {
	return Entry{
		Rank:     row.Rank,
		PlayerID: row.PlayerID,
		Name:     row.Name,
		Score:    row.Score,
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	importHandler      *ImportHandler
	recomputeHandler   *RecomputeHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		rankHandler:        NewRankHandler(deps),
		importHandler:      NewImportHandler(deps),
		recomputeHandler:   NewRecomputeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/import", MetricsMiddleware(s.importHandler.HandlePostImport, "import"))
	mux.HandleFunc("/recompute", MetricsMiddleware(s.recomputeHandler.HandlePostRecompute, "recompute"))
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
