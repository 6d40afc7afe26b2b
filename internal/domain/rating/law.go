package rating

import (
	"math"

	"github.com/tonpuu/riichirank/internal/domain/model"
)

// updateLaw is a pure function from the participants' current beliefs and
// their placements (1 = best, ties share a value, positionally aligned with
// the beliefs) to their updated beliefs.
type updateLaw func(beliefs [model.SeatCount]Belief, places [model.SeatCount]int) [model.SeatCount]Belief

// placements derives 1-based placements from final scores: higher score means
// a lower (better) placement, equal scores share a placement.
func placements(scores [model.SeatCount]int) [model.SeatCount]int {
	var places [model.SeatCount]int
	for i := range scores {
		rank := 1
		for j := range scores {
			if scores[j] > scores[i] {
				rank++
			}
		}
		places[i] = rank
	}
	return places
}

// minProb floors probability denominators in the probit helpers so the
// truncated-Gaussian moments stay finite for extreme skill gaps.
const minProb = 1e-10

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// vWin and wWin are the additive and multiplicative correction terms for a
// Gaussian performance difference observed to exceed the margin t
// (Weng & Lin 2011, eq. 29; the TrueSkill v and w functions).
func vWin(x, t float64) float64 {
	d := x - t
	denom := normCDF(d)
	if denom < minProb {
		// Asymptote of pdf/cdf for d -> -inf.
		return -d
	}
	return normPDF(d) / denom
}

func wWin(x, t float64) float64 {
	d := x - t
	denom := normCDF(d)
	if denom < minProb {
		if d < 0 {
			return 1
		}
		return 0
	}
	v := normPDF(d) / denom
	return v * (v + d)
}

// vDraw and wDraw are the correction terms for a performance difference
// observed to fall inside the margin [-t, t].
func vDraw(x, t float64) float64 {
	denom := normCDF(t-x) - normCDF(-t-x)
	if denom < minProb {
		if x < 0 {
			return -x + t
		}
		return -x - t
	}
	return (normPDF(-t-x) - normPDF(t-x)) / denom
}

func wDraw(x, t float64) float64 {
	denom := normCDF(t-x) - normCDF(-t-x)
	if denom < minProb {
		return 1
	}
	v := vDraw(x, t)
	return v*v + ((t-x)*normPDF(t-x)+(t+x)*normPDF(t+x))/denom
}

// shrink applies the floored variance update sigma' = sigma*sqrt(max(1-delta,
// Kappa)). delta is non-negative in all three laws, so uncertainty never
// grows from an update alone and never collapses to zero.
func shrink(sigma, delta float64) float64 {
	return sigma * math.Sqrt(math.Max(1-delta, Kappa))
}
