package rating

import (
	"math"

	"github.com/tonpuu/riichirank/internal/domain/model"
)

// thurstoneMosteller updates beliefs like bradleyTerry but models each
// pairwise comparison as a Gaussian performance difference (probit) with a
// fixed draw margin instead of a logistic expectation (Weng & Lin 2011,
// Algorithm 2).
func thurstoneMosteller(beliefs [model.SeatCount]Belief, places [model.SeatCount]int) [model.SeatCount]Belief {
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
			x := (b.Mu - o.Mu) / c
			t := DrawMargin / c
			gamma := b.Sigma / c

			switch {
			case places[i] < places[q]:
				omega += sigmaSq / c * vWin(x, t)
				delta += gamma * sigmaSq / cSq * wWin(x, t)
			case places[i] > places[q]:
				omega -= sigmaSq / c * vWin(-x, t)
				delta += gamma * sigmaSq / cSq * wWin(-x, t)
			default:
				omega += sigmaSq / c * vDraw(x, t)
				delta += gamma * sigmaSq / cSq * wDraw(x, t)
			}
		}
		out[i] = Belief{
			Mu:    b.Mu + omega,
			Sigma: shrink(b.Sigma, delta),
		}
	}
	return out
}
