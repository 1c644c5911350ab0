package strategy

import (
	"math"
	"sort"
)

// Breakeven scan tuning. The coarse step trades precision for speed;
// breakevens closer together than the step can be missed. Fixed constants
// keep results reproducible across runs.
const (
	// BreakevenScanStep is the coarse grid increment.
	BreakevenScanStep = 0.25
	// BreakevenRangeFloor is the minimum scan width around the strikes.
	BreakevenRangeFloor = 50.0
	// BreakevenPLTolerance treats a P&L this close to zero as a breakeven.
	BreakevenPLTolerance = 0.01
	// BreakevenWidthTolerance stops bisection once the bracket is this narrow.
	BreakevenWidthTolerance = 0.01
)

// Breakevens locates the underlying prices at which expiration P&L crosses
// zero, using the default scan step. Results are deduplicated, ascending,
// and rounded to the cent. A position with zero legs yields none.
func (p Position) Breakevens() []float64 {
	return p.BreakevensWithStep(BreakevenScanStep)
}

// BreakevensWithStep is Breakevens with an explicit coarse-scan step,
// exposed so tests can verify grid-step invariance.
func (p Position) BreakevensWithStep(step float64) []float64 {
	if p.Empty() || step <= 0 {
		return nil
	}

	minK, maxK := p.strikeBounds()
	span := math.Max(maxK-minK, BreakevenRangeFloor)
	lo := minK - 0.5*span
	hi := maxK + 0.5*span

	var found []float64
	prevX := lo
	prevPL := p.ExpirationPL(lo)
	for x := lo + step; x <= hi+step/2; x += step {
		pl := p.ExpirationPL(x)
		switch {
		case math.Abs(prevPL) < BreakevenPLTolerance:
			found = append(found, prevX)
		case signChange(prevPL, pl):
			found = append(found, p.bisect(prevX, x, prevPL))
		}
		prevX, prevPL = x, pl
	}
	if math.Abs(prevPL) < BreakevenPLTolerance {
		found = append(found, prevX)
	}

	return dedupeCents(found)
}

// bisect narrows a sign-change bracket until the interval or the P&L at its
// midpoint is within tolerance.
func (p Position) bisect(lo, hi, plLo float64) float64 {
	for hi-lo > BreakevenWidthTolerance {
		mid := (lo + hi) / 2
		pl := p.ExpirationPL(mid)
		if math.Abs(pl) < BreakevenPLTolerance {
			return mid
		}
		if (pl < 0) == (plLo < 0) {
			lo, plLo = mid, pl
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func signChange(a, b float64) bool {
	return (a < 0 && b > 0) || (a > 0 && b < 0)
}

// dedupeCents rounds to the cent, sorts ascending, and drops duplicates.
func dedupeCents(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	rounded := make([]float64, 0, len(xs))
	for _, x := range xs {
		rounded = append(rounded, math.Round(x*100)/100)
	}
	sort.Float64s(rounded)
	out := rounded[:1]
	for _, x := range rounded[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
