package rating

import (
	"math"

	"github.com/tonpuu/riichirank/internal/domain/model"
)

// bradleyTerry updates beliefs under the Bradley-Terry model: the four-way
// outcome is decomposed into pairwise comparisons between all ordered pairs,
// each scored 1/0.5/0 against a logistic win expectation, and the pairwise
// corrections are summed (Weng & Lin 2011, Algorithm 1).
func bradleyTerry(beliefs [model.SeatCount]Belief, places [model.SeatCount]int) [model.SeatCount]Belief {
	var out [model.SeatCount]Belief
	for i, b := range beliefs {
		sigmaSq := b.Sigma * b.Sigma
		var omega, delta float64
		for q, o := range beliefs {
			if q == i {
				continue
			}
			cSq := sigmaSq + o.Sigma*o.Sigma + 2*Beta*Beta
			c := math.Sqrt(cSq)
			p := 1 / (1 + math.Exp((o.Mu-b.Mu)/c))

			var s float64
			switch {
			case places[i] < places[q]:
				s = 1
			case places[i] == places[q]:
				s = 0.5
			}

			gamma := b.Sigma / c
			omega += sigmaSq / c * (s - p)
			delta += gamma * sigmaSq / cSq * p * (1 - p)
		}
		out[i] = Belief{
			Mu:    b.Mu + omega,
			Sigma: shrink(b.Sigma, delta),
		}
	}
	return out
}
