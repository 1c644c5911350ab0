// Package config provides configuration management for the options calculator.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Pricing PricingConfig `mapstructure:"pricing"`
	Scan    ScanConfig    `mapstructure:"scan"`
	UI      UIConfig      `mapstructure:"ui"`
	Store   StoreConfig   `mapstructure:"store"`
}

// PricingConfig holds the market-input defaults applied when a request
// omits them.
type PricingConfig struct {
	RiskFreeRate      float64 `mapstructure:"risk_free_rate"`
	ImpliedVolatility float64 `mapstructure:"implied_volatility"`
}

// ScanConfig holds the numerical scan parameters for strategy analysis.
type ScanConfig struct {
	BreakevenStep float64 `mapstructure:"breakeven_step"`
	CurvePoints   int     `mapstructure:"curve_points"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	ChartWidth   int    `mapstructure:"chart_width"`
	ChartHeight  int    `mapstructure:"chart_height"`
}

// StoreConfig holds analysis journal configuration.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty means <config dir>/analyses.db
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-calculator"
	}
	return filepath.Join(home, ".config", "options-calculator")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(configDir, "analyses.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("pricing.risk_free_rate", 0.05)
	v.SetDefault("pricing.implied_volatility", 0.25)
	v.SetDefault("scan.breakeven_step", 0.25)
	v.SetDefault("scan.curve_points", 100)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.chart_width", 60)
	v.SetDefault("ui.chart_height", 16)
	v.SetDefault("store.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write the template, then continue with defaults.
			if terr := createTemplateConfig(configDir); terr != nil {
				return terr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pricing.RiskFreeRate < 0 || c.Pricing.RiskFreeRate > 1 {
		return fmt.Errorf("pricing.risk_free_rate must be between 0 and 1")
	}
	if c.Pricing.ImpliedVolatility <= 0 {
		return fmt.Errorf("pricing.implied_volatility must be positive")
	}
	if c.Scan.BreakevenStep <= 0 {
		return fmt.Errorf("scan.breakeven_step must be positive")
	}
	if c.Scan.CurvePoints < 2 {
		return fmt.Errorf("scan.curve_points must be at least 2")
	}
	if c.UI.ChartWidth < 20 || c.UI.ChartHeight < 5 {
		return fmt.Errorf("ui chart dimensions too small")
	}
	return nil
}
