package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/Renotrader31/options-calculator/internal/models"
)

var testNow = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func testCtx(price float64) models.PricingContext {
	return models.PricingContext{
		UnderlyingPrice:   price,
		RiskFreeRate:      0.05,
		ImpliedVolatility: 0.25,
		Now:               testNow,
	}
}

func mkLeg(side models.PositionSide, typ models.OptionType, strike, premium float64, qty, daysOut int) models.OptionLeg {
	return models.OptionLeg{
		Side:       side,
		Type:       typ,
		Strike:     strike,
		Premium:    premium,
		Quantity:   qty,
		Expiration: testNow.AddDate(0, 0, daysOut),
	}
}

func TestSingleLongCallBreakeven(t *testing.T) {
	const strike, premium = 100.0, 3.5
	pos := NewPosition(mkLeg(models.Long, models.Call, strike, premium, 1, 30))

	bes := pos.Breakevens()
	if len(bes) != 1 {
		t.Fatalf("breakevens = %v, want exactly one", bes)
	}
	if math.Abs(bes[0]-(strike+premium)) > 0.01 {
		t.Errorf("breakeven = %v, want %v ± 0.01", bes[0], strike+premium)
	}
	if pl := pos.ExpirationPL(strike + premium); math.Abs(pl) > 0.01 {
		t.Errorf("P&L at breakeven = %v, want ≈ 0", pl)
	}
}

func TestSingleLongCallPayoff(t *testing.T) {
	pos := NewPosition(mkLeg(models.Long, models.Call, 100, 3.5, 2, 30))

	tests := []struct {
		price float64
		want  float64
	}{
		{90, -700},   // dead: lose both premiums
		{100, -700},  // ATM still worthless
		{110, 1300},  // (10 - 3.5) * 2 * 100
	}
	for _, tt := range tests {
		if got := pos.ExpirationPL(tt.price); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ExpirationPL(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestShortPutPayoff(t *testing.T) {
	pos := NewPosition(mkLeg(models.Short, models.Put, 100, 4, 1, 30))

	if got := pos.ExpirationPL(110); got != 400 {
		t.Errorf("OTM short put P&L = %v, want 400", got)
	}
	if got := pos.ExpirationPL(90); got != -600 {
		t.Errorf("ITM short put P&L = %v, want (4-10)*100 = -600", got)
	}
}

func TestLongStraddle(t *testing.T) {
	const strike, callPrem, putPrem = 100.0, 3.0, 2.5
	pos := NewPosition(
		mkLeg(models.Long, models.Call, strike, callPrem, 1, 30),
		mkLeg(models.Long, models.Put, strike, putPrem, 1, 30),
	)

	bes := pos.Breakevens()
	if len(bes) != 2 {
		t.Fatalf("breakevens = %v, want exactly two", bes)
	}
	total := callPrem + putPrem
	if math.Abs(bes[0]-(strike-total)) > 0.01 {
		t.Errorf("lower breakeven = %v, want %v", bes[0], strike-total)
	}
	if math.Abs(bes[1]-(strike+total)) > 0.01 {
		t.Errorf("upper breakeven = %v, want %v", bes[1], strike+total)
	}

	maxProfit, maxLoss := pos.Extrema()
	if maxProfit == nil || maxLoss == nil {
		t.Fatal("extrema should be known for a non-empty position")
	}
	if !maxProfit.Unbounded {
		t.Error("straddle max profit should be unbounded")
	}
	if maxLoss.Unbounded {
		t.Error("straddle max loss should be bounded")
	}
	if want := -total * models.LotMultiplier; math.Abs(maxLoss.Value-want) > 0.01 {
		t.Errorf("max loss = %v, want %v", maxLoss.Value, want)
	}
}

func TestBullCallSpreadExtrema(t *testing.T) {
	// Long 100 call @ 5, short 110 call @ 2: debit 3, max profit 7, max loss 3.
	pos := NewPosition(
		mkLeg(models.Long, models.Call, 100, 5, 1, 30),
		mkLeg(models.Short, models.Call, 110, 2, 1, 30),
	)

	maxProfit, maxLoss := pos.Extrema()
	if maxProfit == nil || maxLoss == nil {
		t.Fatal("extrema should be known")
	}
	if maxProfit.Unbounded || maxLoss.Unbounded {
		t.Errorf("spread extrema should be bounded: %+v / %+v", maxProfit, maxLoss)
	}
	if math.Abs(maxProfit.Value-700) > 0.01 {
		t.Errorf("max profit = %v, want 700", maxProfit.Value)
	}
	if math.Abs(maxLoss.Value-(-300)) > 0.01 {
		t.Errorf("max loss = %v, want -300", maxLoss.Value)
	}
}

func TestShortCallUnboundedLoss(t *testing.T) {
	pos := NewPosition(mkLeg(models.Short, models.Call, 100, 3, 1, 30))

	maxProfit, maxLoss := pos.Extrema()
	if !maxLoss.Unbounded {
		t.Error("naked short call max loss should be unbounded")
	}
	if maxProfit.Unbounded {
		t.Error("short call max profit is the premium, not unbounded")
	}
	if math.Abs(maxProfit.Value-300) > 0.01 {
		t.Errorf("max profit = %v, want 300", maxProfit.Value)
	}
}

func TestLongPutBoundedProfit(t *testing.T) {
	// The underlying stops at zero, so a long put's upside is finite.
	pos := NewPosition(mkLeg(models.Long, models.Put, 100, 4, 1, 30))

	maxProfit, maxLoss := pos.Extrema()
	if maxProfit.Unbounded {
		t.Error("long put profit should be bounded by the zero price floor")
	}
	// Near (100 - 0.01 - 4) * 100.
	if want := (100 - ExtremaPriceFloor - 4) * 100; math.Abs(maxProfit.Value-want) > 1 {
		t.Errorf("max profit = %v, want ≈ %v", maxProfit.Value, want)
	}
	if maxLoss.Unbounded || math.Abs(maxLoss.Value-(-400)) > 0.01 {
		t.Errorf("max loss = %+v, want -400 bounded", maxLoss)
	}
}

func TestEmptyPosition(t *testing.T) {
	pos := NewPosition()

	if bes := pos.Breakevens(); len(bes) != 0 {
		t.Errorf("breakevens = %v, want none", bes)
	}
	maxProfit, maxLoss := pos.Extrema()
	if maxProfit != nil || maxLoss != nil {
		t.Errorf("extrema = %v / %v, want unknown (nil)", maxProfit, maxLoss)
	}

	sum := pos.Summary(testCtx(100))
	if sum.ProbabilityOfProfit != nil {
		t.Error("probability of profit should be nil with zero legs")
	}
	if sum.RiskRewardRatio != nil {
		t.Error("risk/reward should be nil with zero legs")
	}
	if sum.CurrentPL != 0 || sum.TotalPremium != 0 {
		t.Errorf("empty aggregates: currentPL=%v premium=%v, want 0/0", sum.CurrentPL, sum.TotalPremium)
	}
}

func TestNetPremiumSign(t *testing.T) {
	debit := NewPosition(mkLeg(models.Long, models.Call, 100, 3, 2, 30))
	if got := debit.NetPremium(); got != -600 {
		t.Errorf("net debit premium = %v, want -600", got)
	}

	credit := NewPosition(mkLeg(models.Short, models.Put, 95, 2, 1, 30))
	if got := credit.NetPremium(); got != 200 {
		t.Errorf("net credit premium = %v, want 200", got)
	}
}

func TestPositionImmutable(t *testing.T) {
	legs := []models.OptionLeg{mkLeg(models.Long, models.Call, 100, 3, 1, 30)}
	pos := NewPosition(legs...)

	legs[0].Strike = 999
	if pos.Legs()[0].Strike != 100 {
		t.Error("mutating the input slice leaked into the position")
	}

	out := pos.Legs()
	out[0].Strike = 777
	if pos.Legs()[0].Strike != 100 {
		t.Error("mutating the returned slice leaked into the position")
	}
}

func TestGridStepInvariance(t *testing.T) {
	pos := NewPosition(
		mkLeg(models.Long, models.Call, 100, 3.17, 1, 30),
		mkLeg(models.Long, models.Put, 100, 2.83, 1, 30),
	)

	coarse := pos.BreakevensWithStep(0.25)
	fine := pos.BreakevensWithStep(0.10)
	if len(coarse) != len(fine) {
		t.Fatalf("step changed breakeven count: %v vs %v", coarse, fine)
	}
	for i := range coarse {
		if math.Abs(coarse[i]-fine[i]) > 0.01 {
			t.Errorf("breakeven %d moved with step: %v vs %v", i, coarse[i], fine[i])
		}
	}
}

func TestBreakevensSortedDeduped(t *testing.T) {
	// Iron-condor-ish shape with two distinct crossings.
	pos := NewPosition(
		mkLeg(models.Short, models.Put, 95, 1.5, 1, 30),
		mkLeg(models.Long, models.Put, 90, 0.5, 1, 30),
		mkLeg(models.Short, models.Call, 105, 1.5, 1, 30),
		mkLeg(models.Long, models.Call, 110, 0.5, 1, 30),
	)

	bes := pos.Breakevens()
	if len(bes) != 2 {
		t.Fatalf("condor breakevens = %v, want two", bes)
	}
	for i := 1; i < len(bes); i++ {
		if bes[i] <= bes[i-1] {
			t.Errorf("breakevens not strictly ascending: %v", bes)
		}
	}
	// Short 95 put collected 1.0 net on the put side + 1.0 on the call side:
	// crossings at 95-2 and 105+2.
	if math.Abs(bes[0]-93) > 0.01 || math.Abs(bes[1]-107) > 0.01 {
		t.Errorf("condor breakevens = %v, want ≈ [93, 107]", bes)
	}
}

func TestCurrentPLAtExpiryMatchesIntrinsic(t *testing.T) {
	// With the leg expired, mark-to-model degenerates to intrinsic value.
	pos := NewPosition(mkLeg(models.Long, models.Call, 100, 3, 1, 0))
	ctx := testCtx(110)
	if exp, cur := pos.ExpirationPL(110), pos.CurrentPL(ctx); math.Abs(exp-cur) > 1e-9 {
		t.Errorf("expired current P&L %v != expiration P&L %v", cur, exp)
	}
}

func TestCurrentPLCarriesTimeValue(t *testing.T) {
	// A live ATM long call marks above its intrinsic-only expiration P&L.
	pos := NewPosition(mkLeg(models.Long, models.Call, 100, 3, 1, 30))
	ctx := testCtx(100)
	if cur, exp := pos.CurrentPL(ctx), pos.ExpirationPL(100); cur <= exp {
		t.Errorf("current P&L %v should exceed expiration P&L %v while time value remains", cur, exp)
	}
}

func TestPLCurveShape(t *testing.T) {
	pos := NewPosition(mkLeg(models.Long, models.Call, 100, 3, 1, 30))
	ctx := testCtx(100)

	curve := pos.PLCurve(ctx, 0)
	if len(curve.Prices) != CurvePoints || len(curve.ExpirationPL) != CurvePoints || len(curve.CurrentPL) != CurvePoints {
		t.Fatalf("curve series lengths %d/%d/%d, want %d each",
			len(curve.Prices), len(curve.ExpirationPL), len(curve.CurrentPL), CurvePoints)
	}
	if lo := curve.Prices[0]; math.Abs(lo-50) > 1e-9 {
		t.Errorf("curve starts at %v, want 50 (S - 0.5*S)", lo)
	}
	if hi := curve.Prices[CurvePoints-1]; math.Abs(hi-150) > 1e-9 {
		t.Errorf("curve ends at %v, want 150 (S + 0.5*S)", hi)
	}
	for i := 1; i < CurvePoints; i++ {
		if curve.Prices[i] <= curve.Prices[i-1] {
			t.Fatalf("curve prices not ascending at %d: %v", i, curve.Prices[i-1:i+1])
		}
	}
	// Spot-check alignment: the series must agree with direct evaluation.
	mid := CurvePoints / 2
	if got, want := curve.ExpirationPL[mid], pos.ExpirationPL(curve.Prices[mid]); got != want {
		t.Errorf("expiration series misaligned: %v vs %v", got, want)
	}
	if got, want := curve.CurrentPL[mid], pos.CurrentPLAt(curve.Prices[mid], ctx); got != want {
		t.Errorf("current series misaligned: %v vs %v", got, want)
	}
}

func TestPLCurveExplicitRange(t *testing.T) {
	pos := NewPosition(mkLeg(models.Long, models.Call, 100, 3, 1, 30))
	curve := pos.PLCurve(testCtx(100), 20)
	if math.Abs(curve.Prices[0]-80) > 1e-9 || math.Abs(curve.Prices[CurvePoints-1]-120) > 1e-9 {
		t.Errorf("explicit range ignored: [%v, %v], want [80, 120]",
			curve.Prices[0], curve.Prices[CurvePoints-1])
	}
}

func TestSummaryLongStraddle(t *testing.T) {
	pos := NewPosition(
		mkLeg(models.Long, models.Call, 100, 3, 1, 30),
		mkLeg(models.Long, models.Put, 100, 2.5, 1, 30),
	)
	sum := pos.Summary(testCtx(100))

	if sum.TotalPremium != -550 {
		t.Errorf("total premium = %v, want -550 (net debit)", sum.TotalPremium)
	}
	if sum.RiskRewardRatio != nil {
		t.Error("risk/reward should be nil with unbounded profit")
	}
	if sum.ProbabilityOfProfit == nil {
		t.Fatal("probability of profit missing")
	}
	if pop := *sum.ProbabilityOfProfit; pop <= 0 || pop >= 1 {
		t.Errorf("probability of profit = %v, want in (0,1)", pop)
	}
	if len(sum.LegGreeks) != 2 {
		t.Fatalf("leg greeks count = %d, want 2", len(sum.LegGreeks))
	}
	wantDelta := sum.LegGreeks[0].Delta + sum.LegGreeks[1].Delta
	if math.Abs(sum.TotalGreeks.Delta-wantDelta) > 1e-9 {
		t.Errorf("aggregate delta %v != leg sum %v", sum.TotalGreeks.Delta, wantDelta)
	}
}

func TestSummaryRiskReward(t *testing.T) {
	pos := NewPosition(
		mkLeg(models.Long, models.Call, 100, 5, 1, 30),
		mkLeg(models.Short, models.Call, 110, 2, 1, 30),
	)
	sum := pos.Summary(testCtx(100))

	if sum.RiskRewardRatio == nil {
		t.Fatal("bounded spread should report risk/reward")
	}
	if want := 700.0 / 300.0; math.Abs(*sum.RiskRewardRatio-want) > 0.01 {
		t.Errorf("risk/reward = %v, want %v", *sum.RiskRewardRatio, want)
	}
}

func TestProbabilityOfProfitDirection(t *testing.T) {
	ctx := testCtx(100)

	// Deep ITM long call bought for almost nothing profits over most of the
	// distribution.
	cheap := NewPosition(mkLeg(models.Long, models.Call, 80, 0.5, 1, 30))
	// Far OTM long call rarely pays.
	dear := NewPosition(mkLeg(models.Long, models.Call, 130, 0.5, 1, 30))

	popCheap := cheap.Summary(ctx).ProbabilityOfProfit
	popDear := dear.Summary(ctx).ProbabilityOfProfit
	if popCheap == nil || popDear == nil {
		t.Fatal("probability of profit missing")
	}
	if *popCheap <= 0.5 {
		t.Errorf("deep ITM near-free call PoP = %v, want > 0.5", *popCheap)
	}
	if *popDear >= 0.5 {
		t.Errorf("far OTM call PoP = %v, want < 0.5", *popDear)
	}
	if *popCheap <= *popDear {
		t.Errorf("PoP ordering inverted: %v vs %v", *popCheap, *popDear)
	}
}

func TestLegOrderIrrelevant(t *testing.T) {
	a := mkLeg(models.Long, models.Call, 100, 3, 1, 30)
	b := mkLeg(models.Short, models.Put, 95, 2, 2, 30)

	fwd := NewPosition(a, b)
	rev := NewPosition(b, a)
	for _, price := range []float64{80, 95, 100, 110, 130} {
		if fwd.ExpirationPL(price) != rev.ExpirationPL(price) {
			t.Errorf("leg order changed P&L at %v", price)
		}
	}
	if fwd.NetPremium() != rev.NetPremium() {
		t.Error("leg order changed net premium")
	}
}
