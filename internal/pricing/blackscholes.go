// Package pricing implements closed-form Black-Scholes valuation for
// European options, the option Greeks, and a Newton-Raphson implied
// volatility solver. All functions are stateless and safe for concurrent
// use.
//
// Preconditions: S, K and sigma must be positive wherever a formula divides
// by them. The kernel does not validate; callers guarantee positivity and a
// violation propagates NaN.
package pricing

import (
	"math"

	"github.com/Renotrader31/options-calculator/internal/models"
)

// Abramowitz & Stegun 26.2.17 constants for the normal CDF approximation.
// Fixed so tests can reproduce the approximation exactly.
const (
	cdfBeta = 0.2316419
	cdfB1   = 0.319381530
	cdfB2   = -0.356563782
	cdfB3   = 1.781477937
	cdfB4   = -1.821255978
	cdfB5   = 1.330274429
)

// NormCDF approximates the standard normal cumulative distribution with the
// Abramowitz-Stegun rational polynomial, accurate to about 7 decimal digits.
func NormCDF(x float64) float64 {
	if x < 0 {
		return 1 - NormCDF(-x)
	}
	k := 1 / (1 + cdfBeta*x)
	poly := k * (cdfB1 + k*(cdfB2+k*(cdfB3+k*(cdfB4+k*cdfB5))))
	return 1 - NormPDF(x)*poly
}

// NormPDF is the standard Gaussian density.
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// D1 computes the Black-Scholes d1 term.
func D1(s, k, t, r, sigma float64) float64 {
	return (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
}

// D2 computes d2 from a known d1.
func D2(d1, sigma, t float64) float64 {
	return d1 - sigma*math.Sqrt(t)
}

// CallPrice returns the Black-Scholes price of a European call. At or past
// expiry it degenerates to intrinsic value.
func CallPrice(s, k, t, r, sigma float64) float64 {
	if t <= 0 {
		return math.Max(s-k, 0)
	}
	d1 := D1(s, k, t, r, sigma)
	d2 := D2(d1, sigma, t)
	return math.Max(s*NormCDF(d1)-k*math.Exp(-r*t)*NormCDF(d2), 0)
}

// PutPrice returns the Black-Scholes price of a European put. At or past
// expiry it degenerates to intrinsic value.
func PutPrice(s, k, t, r, sigma float64) float64 {
	if t <= 0 {
		return math.Max(k-s, 0)
	}
	d1 := D1(s, k, t, r, sigma)
	d2 := D2(d1, sigma, t)
	return math.Max(k*math.Exp(-r*t)*NormCDF(-d2)-s*NormCDF(-d1), 0)
}

// Price dispatches to CallPrice or PutPrice by option type.
func Price(typ models.OptionType, s, k, t, r, sigma float64) float64 {
	if typ == models.Put {
		return PutPrice(s, k, t, r, sigma)
	}
	return CallPrice(s, k, t, r, sigma)
}

// ComputeGreeks returns the per-contract Greeks for a single option. Theta
// is per day, vega per 1% volatility move, rho per 1% rate move. At T <= 0
// every Greek is zero except a delta degenerated by moneyness.
func ComputeGreeks(typ models.OptionType, s, k, t, r, sigma float64) models.Greeks {
	if t <= 0 {
		return models.Greeks{Delta: expiryDelta(typ, s, k)}
	}

	d1 := D1(s, k, t, r, sigma)
	d2 := D2(d1, sigma, t)
	pdf := NormPDF(d1)
	sqrtT := math.Sqrt(t)
	discount := math.Exp(-r * t)

	g := models.Greeks{
		Gamma: pdf / (s * sigma * sqrtT),
		Vega:  s * pdf * sqrtT / 100,
	}
	if typ == models.Call {
		g.Delta = NormCDF(d1)
		g.Theta = (-s*sigma*pdf/(2*sqrtT) - r*k*discount*NormCDF(d2)) / models.DaysPerYear
		g.Rho = k * t * discount * NormCDF(d2) / 100
	} else {
		g.Delta = NormCDF(d1) - 1
		g.Theta = (-s*sigma*pdf/(2*sqrtT) + r*k*discount*NormCDF(-d2)) / models.DaysPerYear
		g.Rho = -k * t * discount * NormCDF(-d2) / 100
	}
	return g
}

// expiryDelta is the degenerate delta at expiry: fully in-the-money legs
// move one-for-one with the underlying, everything else is dead.
func expiryDelta(typ models.OptionType, s, k float64) float64 {
	if typ == models.Call {
		if s > k {
			return 1
		}
		return 0
	}
	if s < k {
		return -1
	}
	return 0
}

// rawVega is dPrice/dSigma without the per-1% display scaling. The solver
// needs the true derivative for Newton steps.
func rawVega(s, k, t, r, sigma float64) float64 {
	if t <= 0 {
		return 0
	}
	return s * NormPDF(D1(s, k, t, r, sigma)) * math.Sqrt(t)
}
