package rating

import "math"

// Rating parameters. These materially change the output and are deliberately
// exported named constants rather than hidden literals. Values follow the
// Weng-Lin defaults used by the OpenSkill family of implementations.
const (
	// DefaultMu is the prior mean skill of an unseen player.
	DefaultMu = 25.0
	// DefaultSigma is the prior uncertainty of an unseen player.
	DefaultSigma = DefaultMu / 3.0
	// Beta is the per-game performance dispersion.
	Beta = DefaultMu / 6.0
	// Kappa floors the variance shrink factor so uncertainty can approach,
	// but never reach, zero.
	Kappa = 1e-4
	// DrawMargin is the Thurstone-Mosteller draw margin epsilon.
	DrawMargin = 1e-4
	// OrdinalZ is the number of standard deviations subtracted from the mean
	// when collapsing a belief to a single comparable score.
	OrdinalZ = 3.0
)

// Belief is a player's current skill estimate: a Gaussian with mean Mu and
// standard deviation Sigma. Beliefs are values; the engine writes updated
// copies back into the store.
type Belief struct {
	Mu    float64
	Sigma float64
}

// Ordinal collapses the belief to a conservative scalar, Mu - OrdinalZ*Sigma,
// used for leaderboard ordering.
func (b Belief) Ordinal() float64 {
	return b.Mu - OrdinalZ*b.Sigma
}

// finite reports whether the belief is usable: finite mean, positive finite
// uncertainty.
func (b Belief) finite() bool {
	if math.IsNaN(b.Mu) || math.IsInf(b.Mu, 0) {
		return false
	}
	if math.IsNaN(b.Sigma) || math.IsInf(b.Sigma, 0) || b.Sigma <= 0 {
		return false
	}
	return true
}

// Store maps player identities to beliefs for one rating pass. It is owned
// exclusively by a single engine run and is not safe for concurrent use;
// passes over the same history for different models each get their own store.
type Store struct {
	beliefs map[int64]Belief
	prior   Belief
}

// NewStore creates an empty store that hands out prior for unseen players.
func NewStore(prior Belief) *Store {
	return &Store{
		beliefs: make(map[int64]Belief),
		prior:   prior,
	}
}

// GetOrCreate returns the player's belief, creating it from the prior the
// first time the player is observed.
func (s *Store) GetOrCreate(player int64) Belief {
	if b, ok := s.beliefs[player]; ok {
		return b
	}
	s.beliefs[player] = s.prior
	return s.prior
}

// Get returns the player's belief without creating one.
func (s *Store) Get(player int64) (Belief, bool) {
	b, ok := s.beliefs[player]
	return b, ok
}

// Set overwrites the player's belief. There is no removal: beliefs live for
// the duration of the pass.
func (s *Store) Set(player int64, b Belief) {
	s.beliefs[player] = b
}

// Len returns the number of players observed so far.
func (s *Store) Len() int {
	return len(s.beliefs)
}

// Players returns the observed player identities in unspecified order.
func (s *Store) Players() []int64 {
	ids := make([]int64, 0, len(s.beliefs))
	for id := range s.beliefs {
		ids = append(ids, id)
	}
	return ids
}
