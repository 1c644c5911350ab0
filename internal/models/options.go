// Package models defines the data types shared across the options calculator.
package models

import "time"

// LotMultiplier is the contract-to-shares scaling factor applied to all
// monetary aggregation (premiums, P&L, Greeks).
const LotMultiplier = 100.0

// DaysPerYear is the day-count convention used to derive time to expiry.
const DaysPerYear = 365.0

// PositionSide indicates whether a leg is bought or sold.
type PositionSide string

const (
	Long  PositionSide = "long"
	Short PositionSide = "short"
)

// ParsePositionSide converts a wire-format side into a PositionSide.
func ParsePositionSide(s string) (PositionSide, bool) {
	switch PositionSide(s) {
	case Long, Short:
		return PositionSide(s), true
	}
	return "", false
}

// OptionType is the contract type of a leg.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType converts a wire-format type into an OptionType.
func ParseOptionType(s string) (OptionType, bool) {
	switch OptionType(s) {
	case Call, Put:
		return OptionType(s), true
	}
	return "", false
}

// OptionLeg is one option contract position within a strategy.
type OptionLeg struct {
	Side       PositionSide `json:"position"`
	Type       OptionType   `json:"optionType"`
	Strike     float64      `json:"strike"`
	Premium    float64      `json:"premium"`
	Quantity   int          `json:"quantity"`
	Expiration time.Time    `json:"expiration"`
}

// YearsToExpiry returns the leg's remaining life as a fraction of a 365-day
// year, floored at zero for expired legs.
func (l OptionLeg) YearsToExpiry(now time.Time) float64 {
	days := l.Expiration.Sub(now).Hours() / 24
	if days <= 0 {
		return 0
	}
	return days / DaysPerYear
}

// IntrinsicValue is the payoff from immediate exercise at the given
// underlying price, excluding time value.
func (l OptionLeg) IntrinsicValue(price float64) float64 {
	if l.Type == Call {
		if price > l.Strike {
			return price - l.Strike
		}
		return 0
	}
	if l.Strike > price {
		return l.Strike - price
	}
	return 0
}

// PricingContext carries the market inputs for one calculation request.
// Values arrive already resolved and validated; the engine never fetches
// quotes itself.
type PricingContext struct {
	UnderlyingPrice   float64   `json:"underlyingPrice"`
	RiskFreeRate      float64   `json:"riskFreeRate"`
	ImpliedVolatility float64   `json:"impliedVolatility"`
	Now               time.Time `json:"valuedAt"`
}

// Greeks holds the five first-order sensitivities. Theta is per day, vega
// per 1% volatility move, rho per 1% rate move.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Scale returns the Greeks multiplied by a signed position factor.
func (g Greeks) Scale(f float64) Greeks {
	return Greeks{
		Delta: g.Delta * f,
		Gamma: g.Gamma * f,
		Theta: g.Theta * f,
		Vega:  g.Vega * f,
		Rho:   g.Rho * f,
	}
}

// Add returns the component-wise sum of two Greeks vectors.
func (g Greeks) Add(o Greeks) Greeks {
	return Greeks{
		Delta: g.Delta + o.Delta,
		Gamma: g.Gamma + o.Gamma,
		Theta: g.Theta + o.Theta,
		Vega:  g.Vega + o.Vega,
		Rho:   g.Rho + o.Rho,
	}
}

// Extremum is one bound of a strategy's expiration P&L. Unbounded marks a
// wing that keeps growing past the scan range.
type Extremum struct {
	Value     float64 `json:"value"`
	Unbounded bool    `json:"unbounded"`
}

// StrategySummary is the aggregate analysis of one strategy position.
// Pointer fields are nil when the value has no meaningful definition
// (zero legs, unbounded loss).
type StrategySummary struct {
	Breakevens          []float64 `json:"breakevens"`
	MaxProfit           *Extremum `json:"maxProfit,omitempty"`
	MaxLoss             *Extremum `json:"maxLoss,omitempty"`
	CurrentPL           float64   `json:"currentPL"`
	TotalPremium        float64   `json:"totalPremium"`
	RiskRewardRatio     *float64  `json:"riskRewardRatio,omitempty"`
	ProbabilityOfProfit *float64  `json:"probabilityOfProfit,omitempty"`
	LegGreeks           []Greeks  `json:"legGreeks,omitempty"`
	TotalGreeks         Greeks    `json:"totalGreeks"`
}

// PLCurve is a paired (price, P&L) series for visualization. The three
// slices are index-aligned.
type PLCurve struct {
	Prices       []float64 `json:"prices"`
	ExpirationPL []float64 `json:"expirationPL"`
	CurrentPL    []float64 `json:"currentPL"`
}
