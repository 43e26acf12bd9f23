// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-screener/internal/layout"
	"github.com/jonathan/resume-screener/internal/report"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Page geometry in millimetres; zero means the A4 default
	PageWidth  float64 `json:"page_width,omitempty"`
	PageHeight float64 `json:"page_height,omitempty"`
	Margin     float64 `json:"margin,omitempty"`

	// Report appearance
	Brand             string `json:"brand,omitempty"`               // Right-hand footer text
	RepeatTableHeader bool   `json:"repeat_table_header,omitempty"` // Repeat the candidate table header on every page

	// Output and storage
	OutputDir   string `json:"output_dir,omitempty"`   // Directory exports are written to
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Addr      string `json:"addr,omitempty"`       // Listen address for `serve`
	RateLimit int    `json:"rate_limit,omitempty"` // Requests per minute per client on routes without their own limit
	RateBurst int    `json:"rate_burst,omitempty"` // Burst size for the rate limiter

	// Behavior
	Concurrency     int  `json:"concurrency,omitempty"`      // Parallel exports for export-batch
	SnapshotTimeout int  `json:"snapshot_timeout,omitempty"` // Seconds allowed for a browser capture
	Verbose         bool `json:"verbose,omitempty"`          // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	a4 := layout.A4()
	return Config{
		PageWidth:       a4.Width,
		PageHeight:      a4.Height,
		Margin:          a4.Margin,
		Brand:           report.DefaultBrand,
		OutputDir:       ".",
		Addr:            ":8080",
		RateLimit:       120,
		RateBurst:       20,
		Concurrency:     4,
		SnapshotTimeout: 30,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Zero values are allowed since they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.PageWidth < 0 || c.PageHeight < 0 || c.Margin < 0 {
		return fmt.Errorf("config error: page dimensions must be non-negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit' must be non-negative")
	}
	if c.RateBurst < 0 {
		return fmt.Errorf("config error: 'rate_burst' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.SnapshotTimeout < 0 {
		return fmt.Errorf("config error: 'snapshot_timeout' must be non-negative")
	}

	// Geometry is only checked when fully specified
	if c.PageWidth > 0 && c.PageHeight > 0 {
		if err := c.Geometry().Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Brand == "" {
		result.Brand = defaults.Brand
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}

	// Numeric fields: use default if zero
	if result.PageWidth == 0 {
		result.PageWidth = defaults.PageWidth
	}
	if result.PageHeight == 0 {
		result.PageHeight = defaults.PageHeight
	}
	if result.Margin == 0 {
		result.Margin = defaults.Margin
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.RateBurst == 0 {
		result.RateBurst = defaults.RateBurst
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.SnapshotTimeout == 0 {
		result.SnapshotTimeout = defaults.SnapshotTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Geometry returns the configured page geometry.
func (c *Config) Geometry() layout.PageGeometry {
	return layout.PageGeometry{Width: c.PageWidth, Height: c.PageHeight, Margin: c.Margin}
}

// SnapshotTimeoutDuration returns SnapshotTimeout as a duration.
func (c *Config) SnapshotTimeoutDuration() time.Duration {
	return time.Duration(c.SnapshotTimeout) * time.Second
}
