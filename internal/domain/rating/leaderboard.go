package rating

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tonpuu/riichirank/internal/domain/model"
	"github.com/tonpuu/riichirank/pkg/metrics"
)

// Entry is one leaderboard row: a player, their ordinal score under a model,
// and their 1-based rank.
type Entry struct {
	Player int64
	Score  float64
	Rank   int
}

// Build converts a populated store into a leaderboard ordered by score
// descending, ties broken by ascending player id for determinism.
func Build(store *Store) []Entry {
	players := store.Players()
	entries := make([]Entry, 0, len(players))
	for _, id := range players {
		b, _ := store.Get(id)
		entries = append(entries, Entry{Player: id, Score: b.Ordinal()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Player < entries[j].Player
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// BuildAll runs one independent pass per model and builds each leaderboard.
// The three passes share the immutable game history but nothing else: each
// owns a disjoint store, so they run concurrently. The first failing pass
// cancels the others.
func BuildAll(ctx context.Context, games []model.Game, opts ...Option) (map[Model][]Entry, error) {
	boards := make([][]Entry, len(Models()))

	g, ctx := errgroup.WithContext(ctx)
	for _, m := range Models() {
		m := m
		g.Go(func() error {
			engine, err := NewEngine(m, opts...)
			if err != nil {
				return err
			}
			start := time.Now()
			store, err := engine.Run(ctx, games)
			if err != nil {
				return err
			}
			metrics.RecordRatingPass(m.String(), time.Since(start).Seconds())
			boards[int(m)] = Build(store)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[Model][]Entry, len(Models()))
	for _, m := range Models() {
		out[m] = boards[int(m)]
	}
	return out, nil
}
