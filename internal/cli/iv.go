package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Renotrader31/options-calculator/internal/logging"
	"github.com/Renotrader31/options-calculator/internal/models"
	"github.com/Renotrader31/options-calculator/internal/pricing"
)

func newIVCmd(app *App) *cobra.Command {
	var (
		optionType  string
		stockPrice  float64
		strike      float64
		days        float64
		rate        float64
		marketPrice float64
	)

	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Solve implied volatility from a market price",
		Long: `Back out the implied volatility that reproduces an observed option
price, using Newton-Raphson iteration.

Example:
  options iv --type call --stock 100 --strike 100 --days 30 --price 3.33`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			typ, ok := models.ParseOptionType(optionType)
			if !ok {
				return fmt.Errorf(`invalid option type %q (must be "call" or "put")`, optionType)
			}
			if stockPrice <= 0 || strike <= 0 {
				return fmt.Errorf("stock price and strike must be positive")
			}
			if marketPrice <= 0 {
				return fmt.Errorf("market price must be positive")
			}
			if !cmd.Flags().Changed("rate") {
				rate = app.Config.Pricing.RiskFreeRate
			}

			t := days / models.DaysPerYear
			result := pricing.ImpliedVolatility(marketPrice, stockPrice, strike, t, rate, typ)

			logging.LogIVSolve(app.Logger, string(result.Status), result.Sigma, result.Iterations)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"optionType":  typ,
					"stockPrice":  stockPrice,
					"strike":      strike,
					"days":        days,
					"rate":        rate,
					"marketPrice": marketPrice,
					"sigma":       result.Sigma,
					"status":      result.Status,
					"residual":    result.Residual,
					"iterations":  result.Iterations,
				})
			}

			output.Bold("%s  K=%s  S=%s  %v days  market %s", typ, FormatPrice(strike), FormatPrice(stockPrice), days, FormatCurrency(marketPrice))
			output.Println()
			switch result.Status {
			case pricing.IVConverged:
				output.Printf("  Implied Volatility: %s\n", output.BoldText(FormatIV(result.Sigma)))
				output.Dim("  converged in %d iterations", result.Iterations)
			case pricing.IVBestEffort:
				output.Printf("  Implied Volatility: %s\n", output.BoldText(FormatIV(result.Sigma)))
				output.Warning("  best effort: residual %.6f after %d iterations", result.Residual, result.Iterations)
			case pricing.IVDegenerate:
				output.Error("  no solution: option has no vega (expired or degenerate inputs)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&optionType, "type", "call", "option type: call or put")
	cmd.Flags().Float64Var(&stockPrice, "stock", 0, "underlying stock price")
	cmd.Flags().Float64Var(&strike, "strike", 0, "strike price")
	cmd.Flags().Float64Var(&days, "days", 30, "days to expiration")
	cmd.Flags().Float64Var(&rate, "rate", 0.05, "annualized risk-free rate")
	cmd.Flags().Float64Var(&marketPrice, "price", 0, "observed market price of the option")
	cmd.MarkFlagRequired("stock")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("price")

	return cmd
}
