// Package config holds runtime configuration: defaults, CLI flag parsing,
// optional YAML config file loading, and validation. Defaults match the
// legacy analysis script for parity.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// ChartFormat is the output image format for the boxplot.
type ChartFormat string

const (
	ChartPNG ChartFormat = "png" // Portable Network Graphics (default).
	ChartSVG ChartFormat = "svg" // Scalable Vector Graphics.
	ChartPDF ChartFormat = "pdf" // Portable Document Format.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally layered with a YAML file by [LoadFile], and then mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths.
	DataDir    string `yaml:"data_dir"`    // Directory scanned for .parquet trip files. Default: "data".
	ChartPath  string `yaml:"chart_path"`  // Boxplot output path. Default: "cost_per_minute_by_rate_code.png".
	SummaryCSV string `yaml:"summary_csv"` // Optional summary table CSV export path. Empty: no export.

	// Validity filter. Bounds follow the legacy script: trips must run
	// longer than 1 minute and shorter than a day, with positive fare and
	// distance, and carry a standard rate code (1-6).
	MinDurationMinutes      float64 `yaml:"min_duration_minutes"`      // Default: 1. Duration must strictly exceed this.
	MaxDurationMinutes      float64 `yaml:"max_duration_minutes"`      // Default: 1440. Duration must stay below this.
	RequirePositiveFare     bool    `yaml:"require_positive_fare"`     // Default: true. Drop rows with total_amount <= 0.
	RequirePositiveDistance bool    `yaml:"require_positive_distance"` // Default: true. Drop rows with trip_distance <= 0.
	KnownRateCodesOnly      bool    `yaml:"known_rate_codes_only"`     // Default: true. Keep only rate codes 1-6.

	// Aggregation and chart tuning.
	MinGroupSize     int         `yaml:"min_group_size"`     // Default: 2. Smaller groups are flagged low-confidence.
	ChartQuantileCap float64     `yaml:"chart_quantile_cap"` // Default: 0.95. Y-axis capped at this quantile; 0 disables.
	ChartFormat      ChartFormat `yaml:"chart_format"`       // Default: "png".

	// Behavior flags.
	DryRun          bool `yaml:"-"`                // Load and validate only; write no outputs.
	SecondaryMetric bool `yaml:"secondary_metric"` // Default: true. Also report cost_per_mile.
	WriteChart      bool `yaml:"write_chart"`      // Default: true. Cleared by --no-chart.

	// Display and logging.
	Verbose      bool      `yaml:"-"`
	ShowRowStats bool      `yaml:"show_row_stats"` // Default: true. Per-file row counts during loading.
	ColorMode    ColorMode `yaml:"color_mode"`     // Default: "auto".
	LogFile      string    `yaml:"log_file"`       // Optional log file path.
	CheckOnly    bool      `yaml:"-"`              // Run --check diagnostics and exit.

	// ConfigFile is the YAML file passed via --config, if any.
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns a Config with all defaults matching the legacy
// analysis script. Used as the base before [LoadFile] and [ParseFlags]
// apply overrides.
func DefaultConfig() Config {
	return Config{
		DataDir:                 "data",
		ChartPath:               "cost_per_minute_by_rate_code.png",
		MinDurationMinutes:      1,
		MaxDurationMinutes:      1440,
		RequirePositiveFare:     true,
		RequirePositiveDistance: true,
		KnownRateCodesOnly:      true,
		MinGroupSize:            2,
		ChartQuantileCap:        0.95,
		ChartFormat:             ChartPNG,
		SecondaryMetric:         true,
		WriteChart:              true,
		ShowRowStats:            true,
		ColorMode:               ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric bounds. When not in CheckOnly
// mode it also requires a non-empty data directory and a chart path
// matching the chart format.
func (c *Config) Validate() error {
	switch c.ChartFormat {
	case ChartPNG, ChartSVG, ChartPDF:
		// valid
	default:
		return errors.New("invalid chart format (use 'png', 'svg' or 'pdf')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.MinDurationMinutes < 0 {
		return fmt.Errorf("min duration must not be negative (got %v)", c.MinDurationMinutes)
	}
	if c.MaxDurationMinutes <= c.MinDurationMinutes {
		return fmt.Errorf("max duration (%v) must exceed min duration (%v)",
			c.MaxDurationMinutes, c.MinDurationMinutes)
	}
	if c.MinGroupSize < 1 {
		return errors.New("min group size must be at least 1")
	}
	if c.ChartQuantileCap < 0 || c.ChartQuantileCap >= 1 {
		return errors.New("chart quantile cap must be in [0, 1); 0 disables the cap")
	}

	if c.CheckOnly {
		return nil
	}
	if c.DataDir == "" {
		return errors.New("data directory must not be empty")
	}
	if c.WriteChart {
		if c.ChartPath == "" {
			return errors.New("chart path must not be empty (or pass --no-chart)")
		}
		// Keep path and format consistent: the default path follows the
		// chosen format; an explicit path with a conflicting extension is
		// an error.
		want := "." + string(c.ChartFormat)
		if ext := filepath.Ext(c.ChartPath); ext != want {
			if c.ChartPath == DefaultConfig().ChartPath {
				c.ChartPath = strings.TrimSuffix(c.ChartPath, ext) + want
			} else {
				return fmt.Errorf("chart path %q does not match format %q", c.ChartPath, c.ChartFormat)
			}
		}
	}
	return nil
}
