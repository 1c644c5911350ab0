// Package validate checks analysis requests and resolves them into the
// engine's internal types.
package validate

import (
	"fmt"
	"time"

	"github.com/Renotrader31/options-calculator/internal/errors"
	"github.com/Renotrader31/options-calculator/internal/models"
)

// Defaults applied when a request omits the optional market inputs.
const (
	DefaultRiskFreeRate      = 0.05
	DefaultImpliedVolatility = 0.25
)

// MaxLegs caps the strategy size accepted on one request.
const MaxLegs = 20

const expirationLayout = "2006-01-02"

// Request validates an AnalysisRequest and resolves it into a pricing
// context and a slice of legs. It rejects rather than repairs: any invalid
// field fails the whole request.
func Request(req models.AnalysisRequest, now time.Time) (models.PricingContext, []models.OptionLeg, error) {
	var ctx models.PricingContext

	if req.StockPrice <= 0 {
		return ctx, nil, errors.NewValidationError("stockPrice", req.StockPrice, "must be positive")
	}
	if len(req.Legs) > MaxLegs {
		return ctx, nil, errors.NewValidationError("legs", len(req.Legs), fmt.Sprintf("at most %d legs allowed", MaxLegs))
	}

	ctx = models.PricingContext{
		UnderlyingPrice:   req.StockPrice,
		RiskFreeRate:      DefaultRiskFreeRate,
		ImpliedVolatility: DefaultImpliedVolatility,
		Now:               now,
	}
	if req.RiskFreeRate != nil {
		if *req.RiskFreeRate < 0 || *req.RiskFreeRate > 1 {
			return ctx, nil, errors.NewValidationError("riskFreeRate", *req.RiskFreeRate, "must be within [0, 1]")
		}
		ctx.RiskFreeRate = *req.RiskFreeRate
	}
	if req.ImpliedVolatility != nil {
		if *req.ImpliedVolatility <= 0 {
			return ctx, nil, errors.NewValidationError("impliedVolatility", *req.ImpliedVolatility, "must be positive")
		}
		ctx.ImpliedVolatility = *req.ImpliedVolatility
	}
	if req.PriceRange != nil && *req.PriceRange <= 0 {
		return ctx, nil, errors.NewValidationError("priceRange", *req.PriceRange, "must be positive")
	}

	legs := make([]models.OptionLeg, 0, len(req.Legs))
	for i, lr := range req.Legs {
		leg, err := Leg(lr, i, now)
		if err != nil {
			return ctx, nil, err
		}
		legs = append(legs, leg)
	}
	return ctx, legs, nil
}

// Leg validates one wire-format leg. The index only decorates error
// messages.
func Leg(lr models.LegRequest, index int, now time.Time) (models.OptionLeg, error) {
	var leg models.OptionLeg
	field := func(name string) string { return fmt.Sprintf("legs[%d].%s", index, name) }

	side, ok := models.ParsePositionSide(lr.Position)
	if !ok {
		return leg, errors.NewValidationError(field("position"), lr.Position, `must be "long" or "short"`)
	}
	typ, ok := models.ParseOptionType(lr.OptionType)
	if !ok {
		return leg, errors.NewValidationError(field("optionType"), lr.OptionType, `must be "call" or "put"`)
	}
	if lr.Strike <= 0 {
		return leg, errors.NewValidationError(field("strike"), lr.Strike, "must be positive")
	}
	if lr.Premium < 0 {
		return leg, errors.NewValidationError(field("premium"), lr.Premium, "cannot be negative")
	}
	if lr.Quantity < 1 {
		return leg, errors.NewValidationError(field("quantity"), lr.Quantity, "must be at least 1")
	}
	exp, err := time.Parse(expirationLayout, lr.Expiration)
	if err != nil {
		return leg, errors.NewValidationError(field("expiration"), lr.Expiration, "must be a YYYY-MM-DD date")
	}

	return models.OptionLeg{
		Side:       side,
		Type:       typ,
		Strike:     lr.Strike,
		Premium:    lr.Premium,
		Quantity:   lr.Quantity,
		Expiration: exp,
	}, nil
}

// PriceRange resolves the request's optional curve half-width. Zero means
// "use the engine default".
func PriceRange(req models.AnalysisRequest) float64 {
	if req.PriceRange == nil {
		return 0
	}
	return *req.PriceRange
}
