// Package rating implements the incremental skill estimation engine for
// four-player games. A pass folds an ordered game history into a belief store
// under one of three partial-ranking models, following the Bayesian
// approximation updates of Weng & Lin (JMLR 2011).
package rating

import (
	"fmt"
	"strings"
)

// Model selects the update law applied during a rating pass.
type Model int

// The three supported ranking models.
const (
	// PlackettLuce treats the outcome as a sequential draw-without-replacement
	// ranking over all four players.
	PlackettLuce Model = iota
	// BradleyTerry decomposes the outcome into pairwise logistic comparisons
	// between all ordered pairs.
	BradleyTerry
	// ThurstoneMosteller uses the same pairwise decomposition with a
	// Gaussian-difference (probit) comparison instead of a logistic one.
	ThurstoneMosteller
)

// Models returns all supported models in a stable order.
func Models() []Model {
	return []Model{PlackettLuce, BradleyTerry, ThurstoneMosteller}
}

func (m Model) String() string {
	switch m {
	case PlackettLuce:
		return "plackett_luce"
	case BradleyTerry:
		return "bradley_terry"
	case ThurstoneMosteller:
		return "thurstone_mosteller"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// Prior returns the default belief assigned to a player at first sight under
// this model. All three models share the Weng-Lin defaults.
func (m Model) Prior() Belief {
	return Belief{Mu: DefaultMu, Sigma: DefaultSigma}
}

// law returns the model's update function, or ErrUnknownModel.
func (m Model) law() (updateLaw, error) {
	switch m {
	case PlackettLuce:
		return plackettLuce, nil
	case BradleyTerry:
		return bradleyTerry, nil
	case ThurstoneMosteller:
		return thurstoneMosteller, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
}

// ParseModel resolves a model from its configuration or API name.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plackett_luce", "plackett-luce", "plackettluce", "pl":
		return PlackettLuce, nil
	case "bradley_terry", "bradley-terry", "bradleyterry", "bt":
		return BradleyTerry, nil
	case "thurstone_mosteller", "thurstone-mosteller", "thurstonemosteller", "tm":
		return ThurstoneMosteller, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
}
