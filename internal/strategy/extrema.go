package strategy

import (
	"math"

	"github.com/Renotrader31/options-calculator/internal/models"
)

// Extrema scan tuning. The payoff at expiration is piecewise-linear with
// breakpoints only at leg strikes, so the scan samples a grid plus every
// strike (the kinks are where bounded extrema live) plus wing probes.
const (
	// ExtremaScanStep is the grid increment.
	ExtremaScanStep = 0.5
	// ExtremaRangeFloor is the minimum scan width beyond the strikes.
	ExtremaRangeFloor = 100.0
	// ExtremaPriceFloor keeps the scan above zero.
	ExtremaPriceFloor = 0.01
	// ExtremaWingFactor places the upper wing probe at this multiple of the
	// scan's upper bound.
	ExtremaWingFactor = 2.0

	// A wing probe must beat the grid extremum by this much to count as an
	// unbounded wing rather than float noise.
	extremaWingTolerance = 0.01
)

// Extrema estimates the maximum profit and maximum loss of the expiration
// payoff across the scan range. A wing that is still improving at the upper
// probe is reported as unbounded rather than as the probe's sampled value.
// The lower probe sits at the price floor, where the payoff genuinely
// bottoms out, so it contributes a finite value. Zero legs yields nil for
// both: unknown, distinct from a genuine zero.
func (p Position) Extrema() (maxProfit, maxLoss *models.Extremum) {
	if p.Empty() {
		return nil, nil
	}

	minK, maxK := p.strikeBounds()
	span := math.Max(maxK-minK, ExtremaRangeFloor)
	lo := math.Max(ExtremaPriceFloor, minK-span)
	hi := maxK + span

	best := math.Inf(-1)
	worst := math.Inf(1)
	sample := func(x float64) {
		pl := p.ExpirationPL(x)
		best = math.Max(best, pl)
		worst = math.Min(worst, pl)
	}
	for x := lo; x <= hi+ExtremaScanStep/2; x += ExtremaScanStep {
		sample(x)
	}
	// The clamp at the price floor can knock strikes off the grid.
	for _, leg := range p.legs {
		sample(leg.Strike)
	}

	maxProfit = &models.Extremum{Value: best}
	maxLoss = &models.Extremum{Value: worst}

	// Wing probes proxy the asymptotic payoff beyond the scan range.
	upper := p.ExpirationPL(ExtremaWingFactor * hi)
	if upper > best+extremaWingTolerance {
		maxProfit.Value = upper
		maxProfit.Unbounded = true
	}
	if upper < worst-extremaWingTolerance {
		maxLoss.Value = upper
		maxLoss.Unbounded = true
	}

	// The underlying cannot fall below zero, so the floor probe is a real
	// bound, not an unbounded wing.
	lower := p.ExpirationPL(ExtremaPriceFloor)
	if lower > maxProfit.Value && !maxProfit.Unbounded {
		maxProfit.Value = lower
	}
	if lower < maxLoss.Value && !maxLoss.Unbounded {
		maxLoss.Value = lower
	}

	return maxProfit, maxLoss
}
