package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coreagg "github.com/fuel-lab/fueltrack/internal/core/aggregation"
)

// EnvPrefix scopes environment overrides, e.g. FUELTRACK_OUTPUT__DIR=out.
const EnvPrefix = "FUELTRACK_"

// Config represents the top-level fueltrack configuration.
type Config struct {
	Input  InputConfig  `koanf:"input"`
	Output OutputConfig `koanf:"output"`
	Report ReportConfig `koanf:"report"`
	Charts ChartsConfig `koanf:"charts"`
	Log    LogConfig    `koanf:"log"`
}

type InputConfig struct {
	Path       string `koanf:"path"`
	DateFormat string `koanf:"date_format"` // strftime (%d/%m/%Y) or Go layout; empty = lenient
	DayFirst   bool   `koanf:"day_first"`
	Schema     string `koanf:"schema"` // column schema YAML; empty = built-in
}

type OutputConfig struct {
	Dir        string `koanf:"dir"`
	ReportName string `koanf:"report_name"`
}

type ReportConfig struct {
	Title          string `koanf:"title"`
	TrailingWindow string `koanf:"trailing_window"` // parsed by aggregation.ParseSpan
	Currency       string `koanf:"currency"`
	DistanceUnit   string `koanf:"distance_unit"`
	VolumeUnit     string `koanf:"volume_unit"`
}

type ChartsConfig struct {
	Width        int `koanf:"width"`
	Height       int `koanf:"height"`
	FirstGapDays int `koanf:"first_gap_days"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"input.path":             "data.csv",
		"input.date_format":      "",
		"input.day_first":        true,
		"input.schema":           "",
		"output.dir":             "outputs",
		"output.report_name":     "fuel_consumption_report.pdf",
		"report.title":           "Fuel Consumption Report",
		"report.trailing_window": "28d",
		"report.currency":        "$",
		"report.distance_unit":   "KM",
		"report.volume_unit":     "L",
		"charts.width":           800,
		"charts.height":          400,
		"charts.first_gap_days":  7,
		"log.level":              "info",
		"log.format":             "text",
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Path) == "" {
		return fmt.Errorf("input.path is required")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir is required")
	}
	if strings.TrimSpace(c.Output.ReportName) == "" {
		return fmt.Errorf("output.report_name is required")
	}
	if strings.ContainsAny(c.Output.ReportName, `/\`) {
		return fmt.Errorf("output.report_name %q must be a file name, not a path", c.Output.ReportName)
	}
	if _, err := coreagg.ParseSpan(c.Report.TrailingWindow); err != nil {
		return fmt.Errorf("invalid report.trailing_window: %w", err)
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return fmt.Errorf("charts.width and charts.height must be > 0 (got %dx%d)", c.Charts.Width, c.Charts.Height)
	}
	if c.Charts.FirstGapDays <= 0 {
		return fmt.Errorf("charts.first_gap_days must be > 0")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (must be debug, info, warn or error)", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (must be text or json)", c.Log.Format)
	}
	return nil
}

// Load merges defaults, the optional YAML file at configPath, a .env file in
// the working directory and FUELTRACK_* environment variables, in that
// order, then validates the result. Overrides are applied before
// validation so CLI flags are checked like any other source.
func Load(configPath string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	// FUELTRACK_REPORT__TRAILING_WINDOW=7d overrides report.trailing_window
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	for key, value := range overrides {
		k.Set(key, value)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
