package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Renotrader31/options-calculator/internal/logging"
	"github.com/Renotrader31/options-calculator/internal/models"
	"github.com/Renotrader31/options-calculator/internal/store"
	"github.com/Renotrader31/options-calculator/internal/strategy"
	"github.com/Renotrader31/options-calculator/internal/validate"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		stockPrice float64
		rate       float64
		vol        float64
		priceRange float64
		legSpecs   []string
		file       string
		save       bool
		label      string
		noChart    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a multi-leg option strategy",
		Long: `Analyze an option strategy: breakevens, max profit/loss, Greeks,
probability of profit, and the P&L payoff curve.

Legs are given as side:type:strike:premium:qty:expiration, or the whole
request can be read from a JSON file with --file.`,
		Example: `  options analyze --stock 100 \
    --leg long:call:100:3.00:1:2026-09-25 \
    --leg long:put:100:2.50:1:2026-09-25

  options analyze --file straddle.json --save --label "SPY straddle"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			started := time.Now()

			req, err := buildRequest(cmd, stockPrice, rate, vol, priceRange, legSpecs, file)
			if err != nil {
				return err
			}

			// Config supplies the market-input defaults; explicit flags and
			// file values win.
			if req.RiskFreeRate == nil {
				r := app.Config.Pricing.RiskFreeRate
				req.RiskFreeRate = &r
			}
			if req.ImpliedVolatility == nil {
				v := app.Config.Pricing.ImpliedVolatility
				req.ImpliedVolatility = &v
			}

			now := time.Now().UTC()
			pctx, legs, err := validate.Request(req, now)
			if err != nil {
				return err
			}

			pos := strategy.NewPosition(legs...)
			summary := pos.SummaryWithStep(pctx, app.Config.Scan.BreakevenStep)
			curve := pos.PLCurveN(pctx, validate.PriceRange(req), app.Config.Scan.CurvePoints)

			result := models.AnalysisResult{
				Context: pctx,
				Legs:    pos.Legs(),
				Summary: summary,
				Curve:   curve,
			}

			logging.LogAnalysis(app.Logger, len(legs), pctx.UnderlyingPrice, len(summary.Breakevens), time.Since(started))

			if save {
				if app.Store == nil {
					output.Warning("store unavailable, analysis not saved")
				} else {
					id, err := app.Store.SaveAnalysis(context.Background(), &store.AnalysisRecord{
						CreatedAt: now,
						Label:     label,
						Context:   pctx,
						Legs:      result.Legs,
						Summary:   summary,
					})
					if err != nil {
						output.Warning("saving analysis: %v", err)
					} else if !output.IsJSON() {
						output.Dim("saved as analysis #%d", id)
					}
				}
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			renderAnalysis(output, app, result, noChart)
			return nil
		},
	}

	cmd.Flags().Float64Var(&stockPrice, "stock", 0, "underlying stock price")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annualized risk-free rate")
	cmd.Flags().Float64Var(&vol, "vol", 0, "implied volatility")
	cmd.Flags().Float64Var(&priceRange, "range", 0, "curve half-width in dollars (default: half the stock price)")
	cmd.Flags().StringArrayVar(&legSpecs, "leg", nil, "leg as side:type:strike:premium:qty:expiration (repeatable)")
	cmd.Flags().StringVar(&file, "file", "", "read the analysis request from a JSON file")
	cmd.Flags().BoolVar(&save, "save", false, "save the analysis to the journal")
	cmd.Flags().StringVar(&label, "label", "", "label for the saved analysis")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "skip the ASCII payoff chart")

	return cmd
}

// buildRequest assembles the request from --file or from flags. Flags
// override file values when both are present.
func buildRequest(cmd *cobra.Command, stockPrice, rate, vol, priceRange float64, legSpecs []string, file string) (models.AnalysisRequest, error) {
	var req models.AnalysisRequest

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return req, fmt.Errorf("reading request file: %w", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("parsing request file: %w", err)
		}
	}

	if cmd.Flags().Changed("stock") {
		req.StockPrice = stockPrice
	}
	if cmd.Flags().Changed("rate") {
		req.RiskFreeRate = &rate
	}
	if cmd.Flags().Changed("vol") {
		req.ImpliedVolatility = &vol
	}
	if cmd.Flags().Changed("range") {
		req.PriceRange = &priceRange
	}

	for _, spec := range legSpecs {
		leg, err := parseLegSpec(spec)
		if err != nil {
			return req, err
		}
		req.Legs = append(req.Legs, leg)
	}

	return req, nil
}

// parseLegSpec parses "side:type:strike:premium:qty:expiration".
func parseLegSpec(spec string) (models.LegRequest, error) {
	var leg models.LegRequest
	parts := strings.Split(spec, ":")
	if len(parts) != 6 {
		return leg, fmt.Errorf("invalid leg %q: want side:type:strike:premium:qty:expiration", spec)
	}

	strike, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return leg, fmt.Errorf("invalid strike in leg %q: %w", spec, err)
	}
	premium, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return leg, fmt.Errorf("invalid premium in leg %q: %w", spec, err)
	}
	qty, err := strconv.Atoi(parts[4])
	if err != nil {
		return leg, fmt.Errorf("invalid quantity in leg %q: %w", spec, err)
	}

	return models.LegRequest{
		Position:   parts[0],
		OptionType: parts[1],
		Strike:     strike,
		Premium:    premium,
		Quantity:   qty,
		Expiration: parts[5],
	}, nil
}

func renderAnalysis(output *Output, app *App, result models.AnalysisResult, noChart bool) {
	ctx := result.Context

	output.Bold("Strategy Analysis")
	output.Printf("  Stock: %s  Rate: %s  Vol: %s\n",
		FormatPrice(ctx.UnderlyingPrice), FormatIV(ctx.RiskFreeRate), FormatIV(ctx.ImpliedVolatility))
	output.Println()

	if len(result.Legs) > 0 {
		legTable := NewTable(output, "Side", "Type", "Strike", "Premium", "Qty", "Expiration")
		for _, leg := range result.Legs {
			legTable.AddRow(
				string(leg.Side), string(leg.Type),
				FormatPrice(leg.Strike), FormatPrice(leg.Premium),
				strconv.Itoa(leg.Quantity), FormatDate(leg.Expiration),
			)
		}
		legTable.Render()
		output.Println()
	}

	summary := result.Summary
	lines := []string{
		"Net Premium:   " + output.FormatPnL(summary.TotalPremium),
		"Current P&L:   " + output.FormatPnL(summary.CurrentPL),
		"Breakevens:    " + formatBreakevens(summary.Breakevens),
		"Max Profit:    " + formatExtremum(output, summary.MaxProfit, true),
		"Max Loss:      " + formatExtremum(output, summary.MaxLoss, false),
	}
	if summary.RiskRewardRatio != nil {
		lines = append(lines, "Risk/Reward:   "+FormatRiskReward(*summary.RiskRewardRatio))
	}
	if summary.ProbabilityOfProfit != nil {
		lines = append(lines, "Prob. Profit:  "+FormatProbability(*summary.ProbabilityOfProfit))
	}
	output.Box("Summary", lines)
	output.Println()

	if len(summary.LegGreeks) > 0 {
		output.Bold("Greeks")
		greeksTable := NewTable(output, "Leg", "Delta", "Gamma", "Theta", "Vega", "Rho")
		for i, g := range summary.LegGreeks {
			greeksTable.AddRow(
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%.4f", g.Delta), fmt.Sprintf("%.4f", g.Gamma),
				fmt.Sprintf("%.4f", g.Theta), fmt.Sprintf("%.4f", g.Vega),
				fmt.Sprintf("%.4f", g.Rho),
			)
		}
		tg := summary.TotalGreeks
		greeksTable.AddRow(
			output.BoldText("Total"),
			fmt.Sprintf("%.4f", tg.Delta), fmt.Sprintf("%.4f", tg.Gamma),
			fmt.Sprintf("%.4f", tg.Theta), fmt.Sprintf("%.4f", tg.Vega),
			fmt.Sprintf("%.4f", tg.Rho),
		)
		greeksTable.Render()
		output.Println()
	}

	if !noChart && len(result.Curve.Prices) > 0 {
		output.Bold("Payoff at Expiration")
		RenderPayoffChart(output, result.Curve, app.Config.UI.ChartWidth, app.Config.UI.ChartHeight)
	}
}

func formatBreakevens(breakevens []float64) string {
	if len(breakevens) == 0 {
		return "none"
	}
	parts := make([]string, len(breakevens))
	for i, b := range breakevens {
		parts[i] = FormatPrice(b)
	}
	return strings.Join(parts, ", ")
}

func formatExtremum(output *Output, e *models.Extremum, profit bool) string {
	if e == nil {
		return "n/a"
	}
	if e.Unbounded {
		if profit {
			return output.Green("unlimited")
		}
		return output.Red("unlimited")
	}
	return output.FormatPnL(e.Value)
}
