package rating

import (
	"context"
	"fmt"

	"github.com/tonpuu/riichirank/internal/domain/model"
	"github.com/tonpuu/riichirank/pkg/logger"
	"github.com/tonpuu/riichirank/pkg/metrics"
)

// Engine folds an ordered game history into a belief store under one model.
// The engine is stateless across runs: every Run starts from fresh priors and
// recomputes from scratch.
type Engine struct {
	model   Model
	law     updateLaw
	lenient bool
	log     logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLenient makes the engine skip malformed games instead of aborting the
// pass. The default is strict: the first malformed game fails the run.
func WithLenient(lenient bool) Option {
	return func(e *Engine) {
		e.lenient = lenient
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an engine for the given model. The model is resolved to
// its update law once here, not re-dispatched per game.
func NewEngine(m Model, opts ...Option) (*Engine, error) {
	law, err := m.law()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		model: m,
		law:   law,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Model returns the model this engine applies.
func (e *Engine) Model() Model {
	return e.model
}

// Run processes games in the order supplied (chronological ordering is the
// caller's responsibility) and returns the resulting belief store. The
// context is checked between games; on cancellation the returned store
// reflects the consistent prefix processed so far, alongside the context
// error. Each game's update is all-or-nothing across its four participants.
func (e *Engine) Run(ctx context.Context, games []model.Game) (*Store, error) {
	store := NewStore(e.model.Prior())
	for idx, g := range games {
		if err := ctx.Err(); err != nil {
			return store, fmt.Errorf("rating pass interrupted at game %d: %w", idx, err)
		}

		if err := g.Validate(); err != nil {
			werr := fmt.Errorf("%w: game %d (id %d, players %v): %v",
				ErrMalformedGame, idx, g.ID, g.Players(), err)
			if !e.lenient {
				return nil, werr
			}
			if e.log != nil {
				e.log.Warn(ctx, "skipping malformed game",
					logger.Int("game_index", idx),
					logger.Int64("game_id", g.ID),
					logger.Error(err),
				)
			}
			metrics.RecordGameSkipped(e.model.String())
			continue
		}

		players := g.Players()
		var beliefs [model.SeatCount]Belief
		for i, id := range players {
			beliefs[i] = store.GetOrCreate(id)
		}

		updated := e.law(beliefs, placements(g.Scores()))

		// Verify all four results before writing any of them back.
		for i, b := range updated {
			if !b.finite() {
				return nil, fmt.Errorf("%w: game %d (id %d) player %d: mu=%v sigma=%v",
					ErrNonFiniteBelief, idx, g.ID, players[i], b.Mu, b.Sigma)
			}
		}
		for i, id := range players {
			store.Set(id, updated[i])
		}
		metrics.RecordGameRated(e.model.String())
	}
	return store, nil
}
