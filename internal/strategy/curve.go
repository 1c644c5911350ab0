package strategy

import (
	"math"

	"github.com/Renotrader31/options-calculator/internal/models"
)

// Curve tuning.
const (
	// CurvePoints is the number of sampled prices in a P&L curve.
	CurvePoints = 100
	// CurveRangeFraction is the default half-width of the curve as a
	// fraction of the underlying price.
	CurveRangeFraction = 0.5
	// CurvePriceFloor keeps sampled prices above zero.
	CurvePriceFloor = 0.01
)

// PLCurve samples CurvePoints equally spaced prices around the context's
// underlying price and returns index-aligned expiration and mark-to-model
// P&L series. A non-positive priceRange selects the default half-width of
// CurveRangeFraction times the underlying.
func (p Position) PLCurve(ctx models.PricingContext, priceRange float64) models.PLCurve {
	return p.PLCurveN(ctx, priceRange, CurvePoints)
}

// PLCurveN is PLCurve with an explicit sample count, for callers that tune
// the resolution through configuration. Counts below 2 fall back to the
// default.
func (p Position) PLCurveN(ctx models.PricingContext, priceRange float64, points int) models.PLCurve {
	if points < 2 {
		points = CurvePoints
	}
	s := ctx.UnderlyingPrice
	if priceRange <= 0 {
		priceRange = CurveRangeFraction * s
	}
	lo := math.Max(CurvePriceFloor, s-priceRange)
	hi := s + priceRange
	step := (hi - lo) / float64(points-1)

	curve := models.PLCurve{
		Prices:       make([]float64, points),
		ExpirationPL: make([]float64, points),
		CurrentPL:    make([]float64, points),
	}
	for i := 0; i < points; i++ {
		price := lo + float64(i)*step
		curve.Prices[i] = price
		curve.ExpirationPL[i] = p.ExpirationPL(price)
		curve.CurrentPL[i] = p.CurrentPLAt(price, ctx)
	}
	return curve
}
