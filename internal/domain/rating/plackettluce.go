package rating

import (
	"math"

	"github.com/tonpuu/riichirank/internal/domain/model"
)

// plackettLuce updates beliefs under the Plackett-Luce model: the observed
// ordering is a sequence of draws without replacement, and each stage led by
// a player at placement p is contested by everyone placed at or below p. A
// player's adjustment aggregates their marginal win probability across every
// stage they took part in (Weng & Lin 2011, Algorithm 4).
func plackettLuce(beliefs [model.SeatCount]Belief, places [model.SeatCount]int) [model.SeatCount]Belief {
	var cSq float64
	for _, b := range beliefs {
		cSq += b.Sigma*b.Sigma + Beta*Beta
	}
	c := math.Sqrt(cSq)

	var exps [model.SeatCount]float64
	for i, b := range beliefs {
		exps[i] = math.Exp(b.Mu / c)
	}

	// sumQ[q]: total strength of the players still in contention at the
	// stage led by q. ties[q]: players sharing q's placement.
	var sumQ [model.SeatCount]float64
	var ties [model.SeatCount]float64
	for q := range beliefs {
		for s := range beliefs {
			if places[s] >= places[q] {
				sumQ[q] += exps[s]
			}
			if places[s] == places[q] {
				ties[q]++
			}
		}
	}

	var out [model.SeatCount]Belief
	for i, b := range beliefs {
		var omega, delta float64
		for q := range beliefs {
			if places[q] > places[i] {
				continue
			}
			p := exps[i] / sumQ[q]
			if q == i {
				omega += (1 - p) / ties[q]
			} else {
				omega -= p / ties[q]
			}
			delta += p * (1 - p) / ties[q]
		}
		sigmaSq := b.Sigma * b.Sigma
		gamma := b.Sigma / c
		out[i] = Belief{
			Mu:    b.Mu + sigmaSq/c*omega,
			Sigma: shrink(b.Sigma, gamma*sigmaSq/cSq*delta),
		}
	}
	return out
}
