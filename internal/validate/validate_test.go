package validate

import (
	"testing"
	"time"

	"github.com/Renotrader31/options-calculator/internal/errors"
	"github.com/Renotrader31/options-calculator/internal/models"
)

var now = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func validLeg() models.LegRequest {
	return models.LegRequest{
		Position:   "long",
		OptionType: "call",
		Strike:     100,
		Premium:    3.5,
		Quantity:   1,
		Expiration: "2026-09-25",
	}
}

func TestRequestDefaults(t *testing.T) {
	req := models.AnalysisRequest{
		StockPrice: 100,
		Legs:       []models.LegRequest{validLeg()},
	}
	ctx, legs, err := Request(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.RiskFreeRate != DefaultRiskFreeRate {
		t.Errorf("rate = %v, want default %v", ctx.RiskFreeRate, DefaultRiskFreeRate)
	}
	if ctx.ImpliedVolatility != DefaultImpliedVolatility {
		t.Errorf("vol = %v, want default %v", ctx.ImpliedVolatility, DefaultImpliedVolatility)
	}
	if len(legs) != 1 {
		t.Fatalf("legs = %d, want 1", len(legs))
	}
	if legs[0].Side != models.Long || legs[0].Type != models.Call {
		t.Errorf("leg parsed wrong: %+v", legs[0])
	}
	if want := time.Date(2026, 9, 25, 0, 0, 0, 0, time.UTC); !legs[0].Expiration.Equal(want) {
		t.Errorf("expiration = %v, want %v", legs[0].Expiration, want)
	}
}

func TestRequestExplicitOverrides(t *testing.T) {
	rate, vol := 0.02, 0.40
	req := models.AnalysisRequest{
		StockPrice:        150,
		RiskFreeRate:      &rate,
		ImpliedVolatility: &vol,
		Legs:              []models.LegRequest{validLeg()},
	}
	ctx, _, err := Request(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.RiskFreeRate != rate || ctx.ImpliedVolatility != vol {
		t.Errorf("overrides not applied: %+v", ctx)
	}
}

func TestRequestRejections(t *testing.T) {
	badRate := -0.1
	badVol := 0.0
	badRange := -5.0

	mutate := func(f func(*models.AnalysisRequest)) models.AnalysisRequest {
		req := models.AnalysisRequest{
			StockPrice: 100,
			Legs:       []models.LegRequest{validLeg()},
		}
		f(&req)
		return req
	}
	mutateLeg := func(f func(*models.LegRequest)) models.AnalysisRequest {
		return mutate(func(r *models.AnalysisRequest) { f(&r.Legs[0]) })
	}

	tests := []struct {
		name string
		req  models.AnalysisRequest
	}{
		{"zero stock price", mutate(func(r *models.AnalysisRequest) { r.StockPrice = 0 })},
		{"negative stock price", mutate(func(r *models.AnalysisRequest) { r.StockPrice = -10 })},
		{"negative rate", mutate(func(r *models.AnalysisRequest) { r.RiskFreeRate = &badRate })},
		{"zero vol", mutate(func(r *models.AnalysisRequest) { r.ImpliedVolatility = &badVol })},
		{"negative price range", mutate(func(r *models.AnalysisRequest) { r.PriceRange = &badRange })},
		{"unknown side", mutateLeg(func(l *models.LegRequest) { l.Position = "LONG" })},
		{"unknown type", mutateLeg(func(l *models.LegRequest) { l.OptionType = "straddle" })},
		{"zero strike", mutateLeg(func(l *models.LegRequest) { l.Strike = 0 })},
		{"negative premium", mutateLeg(func(l *models.LegRequest) { l.Premium = -1 })},
		{"zero quantity", mutateLeg(func(l *models.LegRequest) { l.Quantity = 0 })},
		{"bad expiration", mutateLeg(func(l *models.LegRequest) { l.Expiration = "25-09-2026" })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Request(tt.req, now)
			if err == nil {
				t.Fatal("want validation error, got nil")
			}
			if !errors.Is(err, errors.ErrInputValidation) {
				t.Errorf("error %v does not unwrap to ErrInputValidation", err)
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error %T is not a *ValidationError", err)
			}
		})
	}
}

func TestRequestZeroLegsAllowed(t *testing.T) {
	// Zero legs is a valid request; the summary layer reports nil sentinels.
	_, legs, err := Request(models.AnalysisRequest{StockPrice: 100}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(legs) != 0 {
		t.Errorf("legs = %v, want empty", legs)
	}
}

func TestPriceRange(t *testing.T) {
	if got := PriceRange(models.AnalysisRequest{}); got != 0 {
		t.Errorf("default range = %v, want 0", got)
	}
	r := 25.0
	if got := PriceRange(models.AnalysisRequest{PriceRange: &r}); got != 25 {
		t.Errorf("range = %v, want 25", got)
	}
}
