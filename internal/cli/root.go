// Package cli provides the command-line interface for the options calculator.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Renotrader31/options-calculator/internal/config"
	"github.com/Renotrader31/options-calculator/internal/logging"
	"github.com/Renotrader31/options-calculator/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-24"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Store.Enabled {
		dataStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize store, history unavailable")
		} else {
			app.Store = dataStore
			logger.Debug().Str("path", cfg.Store.Path).Msg("SQLite store initialized")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "options",
		Short: "Options Calculator - option pricing and strategy analysis CLI",
		Long: `Options Calculator prices options with the Black-Scholes model and
analyzes multi-leg strategies: breakevens, max profit/loss, Greeks,
probability of profit, and P&L payoff curves.

Use 'options help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-calculator)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newIVCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Options Calculator v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Pricing Defaults")
	output.Printf("  Risk-Free Rate:     %s\n", FormatIV(cfg.Pricing.RiskFreeRate))
	output.Printf("  Implied Volatility: %s\n", FormatIV(cfg.Pricing.ImpliedVolatility))
	output.Println()

	output.Bold("Scan Configuration")
	output.Printf("  Breakeven Step: %.2f\n", cfg.Scan.BreakevenStep)
	output.Printf("  Curve Points:   %d\n", cfg.Scan.CurvePoints)
	output.Println()

	output.Bold("UI Configuration")
	output.Printf("  Color Enabled: %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Date Format:   %s\n", cfg.UI.DateFormat)
	output.Printf("  Chart Size:    %dx%d\n", cfg.UI.ChartWidth, cfg.UI.ChartHeight)
	output.Println()

	output.Bold("Store")
	output.Printf("  Enabled: %v\n", cfg.Store.Enabled)
	output.Printf("  Path:    %s\n", cfg.Store.Path)

	return nil
}
