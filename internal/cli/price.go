package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Renotrader31/options-calculator/internal/logging"
	"github.com/Renotrader31/options-calculator/internal/models"
	"github.com/Renotrader31/options-calculator/internal/pricing"
)

func newPriceCmd(app *App) *cobra.Command {
	var (
		optionType string
		stockPrice float64
		strike     float64
		days       float64
		rate       float64
		vol        float64
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single option with Black-Scholes",
		Long: `Price a single option contract and compute its Greeks.

Example:
  options price --type call --stock 100 --strike 100 --days 30 --vol 0.25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			typ, ok := models.ParseOptionType(optionType)
			if !ok {
				return fmt.Errorf(`invalid option type %q (must be "call" or "put")`, optionType)
			}
			if stockPrice <= 0 || strike <= 0 {
				return fmt.Errorf("stock price and strike must be positive")
			}
			if days < 0 {
				return fmt.Errorf("days to expiry cannot be negative")
			}
			if vol <= 0 {
				vol = app.Config.Pricing.ImpliedVolatility
			}
			if !cmd.Flags().Changed("rate") {
				rate = app.Config.Pricing.RiskFreeRate
			}

			t := days / models.DaysPerYear
			price := pricing.Price(typ, stockPrice, strike, t, rate, vol)
			greeks := pricing.ComputeGreeks(typ, stockPrice, strike, t, rate, vol)

			logging.LogPriceCalc(app.Logger, string(typ), strike, price)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"optionType": typ,
					"stockPrice": stockPrice,
					"strike":     strike,
					"days":       days,
					"rate":       rate,
					"volatility": vol,
					"price":      price,
					"greeks":     greeks,
				})
			}

			output.Bold("%s  K=%s  S=%s  %v days", typ, FormatPrice(strike), FormatPrice(stockPrice), days)
			output.Printf("  Rate: %s  Vol: %s\n", FormatIV(rate), FormatIV(vol))
			output.Println()
			output.Printf("  Price: %s\n", output.BoldText(FormatCurrency(price)))
			output.Printf("  %s\n", FormatGreeks(greeks.Delta, greeks.Gamma, greeks.Theta, greeks.Vega, greeks.Rho))
			return nil
		},
	}

	cmd.Flags().StringVar(&optionType, "type", "call", "option type: call or put")
	cmd.Flags().Float64Var(&stockPrice, "stock", 0, "underlying stock price")
	cmd.Flags().Float64Var(&strike, "strike", 0, "strike price")
	cmd.Flags().Float64Var(&days, "days", 30, "days to expiration")
	cmd.Flags().Float64Var(&rate, "rate", 0.05, "annualized risk-free rate")
	cmd.Flags().Float64Var(&vol, "vol", 0, "implied volatility (default from config)")
	cmd.MarkFlagRequired("stock")
	cmd.MarkFlagRequired("strike")

	return cmd
}
