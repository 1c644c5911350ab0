package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Calculator Configuration

[pricing]
# Default risk-free rate applied when a request omits one
risk_free_rate = 0.05
# Default implied volatility applied when a request omits one
implied_volatility = 0.25

[scan]
# Price grid step for breakeven scanning
breakeven_step = 0.25
# Number of samples in the P&L curve
curve_points = 100

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
# ASCII payoff chart dimensions
chart_width = 60
chart_height = 16

[store]
# Persist analyses to the local journal
enabled = true
# Journal path; empty means <config dir>/analyses.db
path = ""
`

// createTemplateConfig writes a starter config.toml so the first run leaves
// something editable behind.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
