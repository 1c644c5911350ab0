package strategy

import (
	"math"

	"github.com/Renotrader31/options-calculator/internal/models"
	"github.com/Renotrader31/options-calculator/internal/pricing"
)

// Summary composes the full strategy analysis for one pricing context:
// breakevens, extrema, current P&L, signed net premium, Greeks,
// risk/reward, and probability of profit.
func (p Position) Summary(ctx models.PricingContext) models.StrategySummary {
	return p.SummaryWithStep(ctx, BreakevenScanStep)
}

// SummaryWithStep is Summary with an explicit breakeven scan step, for
// callers that tune the grid through configuration.
func (p Position) SummaryWithStep(ctx models.PricingContext, step float64) models.StrategySummary {
	sum := models.StrategySummary{
		Breakevens:   p.BreakevensWithStep(step),
		CurrentPL:    p.CurrentPL(ctx),
		TotalPremium: p.NetPremium(),
	}
	sum.MaxProfit, sum.MaxLoss = p.Extrema()
	sum.LegGreeks, sum.TotalGreeks = p.Greeks(ctx)
	sum.RiskRewardRatio = riskReward(sum.MaxProfit, sum.MaxLoss)
	sum.ProbabilityOfProfit = p.probabilityOfProfit(ctx, sum.Breakevens)
	return sum
}

// riskReward is |maxProfit / maxLoss|, undefined (nil) when either side is
// unbounded or the loss is zero.
func riskReward(maxProfit, maxLoss *models.Extremum) *float64 {
	if maxProfit == nil || maxLoss == nil {
		return nil
	}
	if maxProfit.Unbounded || maxLoss.Unbounded || maxLoss.Value == 0 {
		return nil
	}
	v := math.Abs(maxProfit.Value / maxLoss.Value)
	return &v
}

// probabilityOfProfit estimates the chance the strategy expires profitable
// using a lognormal terminal-price distribution with risk-neutral drift,
// measured against the first breakeven only and the first leg's time to
// expiry. A simplification for multi-breakeven shapes (condors,
// butterflies); the profitable side of the first breakeven decides which
// tail counts.
func (p Position) probabilityOfProfit(ctx models.PricingContext, breakevens []float64) *float64 {
	if p.Empty() || len(breakevens) == 0 {
		return nil
	}
	b := breakevens[0]
	t := p.legs[0].YearsToExpiry(ctx.Now)
	sigma := ctx.ImpliedVolatility
	if t <= 0 || sigma <= 0 || b <= 0 || ctx.UnderlyingPrice <= 0 {
		// Expired or degenerate inputs: profit is decided, not probabilistic.
		v := 0.0
		if p.ExpirationPL(ctx.UnderlyingPrice) > 0 {
			v = 1.0
		}
		return &v
	}

	d := (math.Log(b/ctx.UnderlyingPrice) - (ctx.RiskFreeRate-0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	probAbove := 1 - pricing.NormCDF(d)

	v := probAbove
	if p.ExpirationPL(b+BreakevenScanStep) <= 0 {
		v = 1 - probAbove
	}
	return &v
}
