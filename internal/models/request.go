package models

// LegRequest is one leg of an analysis request, as received on the wire.
type LegRequest struct {
	Position   string  `json:"position"`
	OptionType string  `json:"optionType"`
	Strike     float64 `json:"strike"`
	Premium    float64 `json:"premium"`
	Quantity   int     `json:"quantity"`
	Expiration string  `json:"expiration"` // YYYY-MM-DD
}

// AnalysisRequest is the external request contract. RiskFreeRate and
// ImpliedVolatility are optional; the validation layer applies defaults.
type AnalysisRequest struct {
	StockPrice        float64      `json:"stockPrice"`
	RiskFreeRate      *float64     `json:"riskFreeRate,omitempty"`
	ImpliedVolatility *float64     `json:"impliedVolatility,omitempty"`
	Legs              []LegRequest `json:"legs"`
	PriceRange        *float64     `json:"priceRange,omitempty"`
}

// AnalysisResult is the response contract: the summary plus the paired
// P&L series.
type AnalysisResult struct {
	Context PricingContext  `json:"context"`
	Legs    []OptionLeg     `json:"legs"`
	Summary StrategySummary `json:"summary"`
	Curve   PLCurve         `json:"curve"`
}
