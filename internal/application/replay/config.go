// Package replay wires ingestion, the playback engine, and presentation into
// a running session.
package replay

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/penwyp/go-geo-replay/internal/presentation/marker"
	"github.com/shopspring/decimal"
)

// envPrefix namespaces the environment overrides, e.g. GEOREPLAY_DATA_FILE.
const envPrefix = "GEOREPLAY_"

// Config holds every tunable of a replay session. Values layer as defaults,
// then an optional YAML file, then GEOREPLAY_* environment variables.
type Config struct {
	DataFile     string `koanf:"data_file"`
	ExecFile     string `koanf:"exec_file"`
	BoundaryFile string `koanf:"boundary_file"`

	DateProperty string `koanf:"date_property"`
	Timezone     string `koanf:"timezone"`
	StartMonth   string `koanf:"start_month"`

	TickMS int `koanf:"tick_ms"`
	TopN   int `koanf:"top_n"`

	MediumBreak int64 `koanf:"medium_break"`
	LargeBreak  int64 `koanf:"large_break"`
	XLargeBreak int64 `koanf:"xlarge_break"`

	MetricsAddr string `koanf:"metrics_addr"`
	LogLevel    string `koanf:"log_level"`
	LogFile     string `koanf:"log_file"`
}

// DefaultConfig returns the built-in settings: the historical dataset starts
// in June 2017 and steps every 500ms.
func DefaultConfig() Config {
	return Config{
		DateProperty: "fecha",
		Timezone:     "Europe/Madrid",
		StartMonth:   "2017-06",
		TickMS:       500,
		TopN:         10,
		MediumBreak:  10_000,
		LargeBreak:   100_000,
		XLargeBreak:  1_000_000,
		LogLevel:     "info",
	}
}

// LoadConfig layers the optional YAML file at configPath and the environment
// on top of the defaults. An empty configPath skips the file layer.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot start a session.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	if c.ExecFile == "" {
		return fmt.Errorf("exec_file is required")
	}
	if c.BoundaryFile == "" {
		return fmt.Errorf("boundary_file is required")
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMS)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := time.Parse("2006-01", c.StartMonth); err != nil {
		return fmt.Errorf("invalid start_month %q, want YYYY-MM: %w", c.StartMonth, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// StartTime resolves the forced first month of the timeline in loc.
func (c *Config) StartTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01", c.StartMonth, loc)
}

// Tick converts the configured cadence to a duration.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Breakpoints builds the marker tier thresholds.
func (c *Config) Breakpoints() marker.Breakpoints {
	return marker.Breakpoints{
		Medium: decimal.NewFromInt(c.MediumBreak),
		Large:  decimal.NewFromInt(c.LargeBreak),
		XLarge: decimal.NewFromInt(c.XLargeBreak),
	}
}
