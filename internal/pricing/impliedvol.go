package pricing

import (
	"math"

	"github.com/Renotrader31/options-calculator/internal/models"
)

// Solver tuning. Named so behavior is reproducible across runs and tests.
const (
	IVInitialGuess  = 0.30
	IVTolerance     = 1e-4
	IVMaxIterations = 100
	IVMin           = 0.01
	IVMax           = 5.0

	// Below this vega a Newton step would blow up; the solver stops and
	// reports the last iterate instead.
	ivVegaFloor = 1e-10
)

// IVStatus classifies how the solver terminated.
type IVStatus string

const (
	// IVConverged means the model price matched the market price within
	// tolerance.
	IVConverged IVStatus = "converged"
	// IVBestEffort means the iteration budget ran out; Sigma is the last
	// clamped iterate and Residual the remaining price gap.
	IVBestEffort IVStatus = "best_effort"
	// IVDegenerate means vega underflowed (expired or far-from-the-money
	// option); Sigma is whatever iterate was current.
	IVDegenerate IVStatus = "degenerate"
)

// IVResult is the tagged outcome of an implied volatility search. A caller
// can always read Sigma, but must check Status before trusting it as a
// converged value.
type IVResult struct {
	Sigma      float64  `json:"sigma"`
	Status     IVStatus `json:"status"`
	Residual   float64  `json:"residual"`
	Iterations int      `json:"iterations"`
}

// Converged reports whether the result met tolerance.
func (r IVResult) Converged() bool { return r.Status == IVConverged }

// ImpliedVolatility inverts a market price into a volatility using the
// default tolerance and iteration budget.
func ImpliedVolatility(marketPrice, s, k, t, r float64, typ models.OptionType) IVResult {
	return SolveImpliedVolatility(marketPrice, s, k, t, r, typ, IVTolerance, IVMaxIterations)
}

// SolveImpliedVolatility runs Newton-Raphson from IVInitialGuess, clamping
// each iterate to [IVMin, IVMax]. Non-convergence is not an error: the last
// sigma reached is returned with a status a caller can distinguish.
func SolveImpliedVolatility(marketPrice, s, k, t, r float64, typ models.OptionType, tolerance float64, maxIterations int) IVResult {
	sigma := IVInitialGuess
	for i := 0; i < maxIterations; i++ {
		diff := Price(typ, s, k, t, r, sigma) - marketPrice
		if math.Abs(diff) < tolerance {
			return IVResult{Sigma: sigma, Status: IVConverged, Residual: diff, Iterations: i}
		}
		vega := rawVega(s, k, t, r, sigma)
		if vega < ivVegaFloor {
			return IVResult{Sigma: sigma, Status: IVDegenerate, Residual: diff, Iterations: i}
		}
		sigma = clampSigma(sigma - diff/vega)
	}
	residual := Price(typ, s, k, t, r, sigma) - marketPrice
	return IVResult{Sigma: sigma, Status: IVBestEffort, Residual: residual, Iterations: maxIterations}
}

func clampSigma(sigma float64) float64 {
	if sigma < IVMin {
		return IVMin
	}
	if sigma > IVMax {
		return IVMax
	}
	return sigma
}
