// Package strategy implements multi-leg option strategy analytics:
// expiration and mark-to-model P&L, breakeven detection, extrema
// estimation, P&L curves, and the summary aggregator.
//
// A Position is built once per calculation request and never mutated, so
// concurrent requests can share nothing and still run in parallel.
package strategy

import (
	"math"

	"github.com/Renotrader31/options-calculator/internal/models"
	"github.com/Renotrader31/options-calculator/internal/pricing"
)

// Position is an immutable ordered collection of option legs forming one
// analysis request. Leg order is insertion order and irrelevant to results.
type Position struct {
	legs []models.OptionLeg
}

// NewPosition builds a Position from validated legs. The slice is copied;
// the caller keeps no handle into the Position's state.
func NewPosition(legs ...models.OptionLeg) Position {
	cp := make([]models.OptionLeg, len(legs))
	copy(cp, legs)
	return Position{legs: cp}
}

// Legs returns a copy of the position's legs.
func (p Position) Legs() []models.OptionLeg {
	cp := make([]models.OptionLeg, len(p.legs))
	copy(cp, p.legs)
	return cp
}

// Empty reports whether the position has no legs.
func (p Position) Empty() bool { return len(p.legs) == 0 }

// ExpirationPL is the strategy's profit or loss if the underlying settles
// at price on expiration day. Legs are summed commutatively.
func (p Position) ExpirationPL(price float64) float64 {
	var total float64
	for _, leg := range p.legs {
		total += legPL(leg, leg.IntrinsicValue(price))
	}
	return total
}

// CurrentPL marks the strategy to model at the context's underlying price.
func (p Position) CurrentPL(ctx models.PricingContext) float64 {
	return p.CurrentPLAt(ctx.UnderlyingPrice, ctx)
}

// CurrentPLAt is CurrentPL evaluated at an arbitrary underlying price,
// substituting each leg's theoretical value (at that leg's own time to
// expiry) for intrinsic value.
func (p Position) CurrentPLAt(price float64, ctx models.PricingContext) float64 {
	var total float64
	for _, leg := range p.legs {
		t := leg.YearsToExpiry(ctx.Now)
		theo := pricing.Price(leg.Type, price, leg.Strike, t, ctx.RiskFreeRate, ctx.ImpliedVolatility)
		total += legPL(leg, theo)
	}
	return total
}

// NetPremium is the signed premium flow: negative for a net debit
// (long-heavy) position, positive for a net credit.
func (p Position) NetPremium() float64 {
	var total float64
	for _, leg := range p.legs {
		flow := leg.Premium * float64(leg.Quantity) * models.LotMultiplier
		if leg.Side == models.Long {
			total -= flow
		} else {
			total += flow
		}
	}
	return total
}

// Greeks returns the per-leg Greeks (signed by position side, scaled by
// quantity and lot multiplier) and their aggregate.
func (p Position) Greeks(ctx models.PricingContext) ([]models.Greeks, models.Greeks) {
	per := make([]models.Greeks, 0, len(p.legs))
	var total models.Greeks
	for _, leg := range p.legs {
		t := leg.YearsToExpiry(ctx.Now)
		g := pricing.ComputeGreeks(leg.Type, ctx.UnderlyingPrice, leg.Strike, t, ctx.RiskFreeRate, ctx.ImpliedVolatility)
		scale := float64(leg.Quantity) * models.LotMultiplier
		if leg.Side == models.Short {
			scale = -scale
		}
		g = g.Scale(scale)
		per = append(per, g)
		total = total.Add(g)
	}
	return per, total
}

// legPL converts a leg's per-share value into signed P&L.
func legPL(leg models.OptionLeg, value float64) float64 {
	scale := float64(leg.Quantity) * models.LotMultiplier
	if leg.Side == models.Long {
		return (value - leg.Premium) * scale
	}
	return (leg.Premium - value) * scale
}

// strikeBounds returns the lowest and highest strikes across all legs.
// Callers must ensure the position is non-empty.
func (p Position) strikeBounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, leg := range p.legs {
		lo = math.Min(lo, leg.Strike)
		hi = math.Max(hi, leg.Strike)
	}
	return lo, hi
}
