// Package service wires the record store, importer and rating engine into the
// application surface consumed by the HTTP API.
package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tonpuu/riichirank/internal/adapters/repository"
	"github.com/tonpuu/riichirank/internal/domain/dedupe"
	"github.com/tonpuu/riichirank/internal/domain/rating"
	"github.com/tonpuu/riichirank/internal/importer"
	"github.com/tonpuu/riichirank/pkg/logger"
	"github.com/tonpuu/riichirank/pkg/metrics"
)

// Service owns the recompute lifecycle: import batches mutate the record
// store, a recompute folds the full history through the three models and
// overwrites the stored leaderboards, reads serve from the store.
type Service struct {
	mu sync.RWMutex

	store    *repository.Store
	importer *importer.Importer

	lenient    bool
	maxLimit   int
	dedupeSize int

	lastRecompute time.Time

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLenientGames makes rating passes skip malformed games instead of
// failing the recompute.
func WithLenientGames(lenient bool) Option {
	return func(s *Service) {
		s.lenient = lenient
	}
}

// WithMaxLeaderboardLimit caps leaderboard query sizes.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithImportDedupeSize bounds the importer's duplicate-row cache.
func WithImportDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeSize = n
		}
	}
}

// New constructs a Service over an opened record store.
func New(store *repository.Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		lenient:    true,
		maxLimit:   500,
		dedupeSize: 100_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	s.importer = importer.New(store,
		importer.WithDeduper(dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))),
		importer.WithLogger(s.log.Named("importer")),
	)
	return s
}

// MaxLeaderboardLimit returns the configured leaderboard size cap.
func (s *Service) MaxLeaderboardLimit() int {
	return s.maxLimit
}

// Recompute folds the full game history through all three models and
// replaces the stored leaderboards. Reruns overwrite previous output
// entirely; nothing incremental is kept between runs.
func (s *Service) Recompute(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	games, err := s.store.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}

	start := time.Now()
	boards, err := rating.BuildAll(ctx, games,
		rating.WithLenient(s.lenient),
		rating.WithLogger(s.log.Named("rating")),
	)
	if err != nil {
		return fmt.Errorf("recompute: %w", err)
	}

	for _, m := range rating.Models() {
		if err := s.store.ReplaceRatings(ctx, m, boards[m]); err != nil {
			return fmt.Errorf("recompute: %w", err)
		}
	}
	s.lastRecompute = time.Now()

	if n, err := s.store.CountPlayers(ctx); err == nil {
		metrics.UpdatePlayersTracked(n)
	}
	s.log.Info(ctx, "recompute complete",
		logger.Int("games", len(games)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// ImportCSV ingests a score sheet export and recomputes ratings over the
// grown history.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (importer.Report, error) {
	report, err := s.importer.ImportCSV(ctx, r)
	if err != nil {
		return report, err
	}
	if report.Imported > 0 {
		if err := s.Recompute(ctx); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Leaderboard returns the stored top-n rows for a model.
func (s *Service) Leaderboard(ctx context.Context, modelName string, n int) ([]repository.LeaderboardRow, error) {
	m, err := rating.ParseModel(modelName)
	if err != nil {
		return nil, err
	}
	if n > s.maxLimit {
		n = s.maxLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Leaderboard(ctx, m, n)
}

// PlayerRank returns one player's stored rank and score under a model.
func (s *Service) PlayerRank(ctx context.Context, modelName string, playerID int64) (repository.LeaderboardRow, error) {
	m, err := rating.ParseModel(modelName)
	if err != nil {
		return repository.LeaderboardRow{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.PlayerRank(ctx, m, playerID)
}

// Stats returns a monitoring snapshot.
func (s *Service) Stats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"models":        len(rating.Models()),
		"lenient_games": s.lenient,
	}
	if !s.lastRecompute.IsZero() {
		stats["last_recompute"] = s.lastRecompute.Format(time.RFC3339)
	}
	if n, err := s.store.CountPlayers(ctx); err == nil {
		stats["players"] = n
	}
	if n, err := s.store.CountGames(ctx); err == nil {
		stats["games"] = n
	}
	return stats
}
