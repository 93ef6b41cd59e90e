package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-geo-replay/internal/application/replay"
	"github.com/penwyp/go-geo-replay/internal/presentation/formatter"
	"github.com/penwyp/go-geo-replay/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Config layering
	configPath string

	// Input data
	dataFile     string
	execFile     string
	boundaryFile string
	dateProperty string

	// Timeline
	timezone   string
	startMonth string

	// Output related
	outputFormat string
	topN         int

	rootCmd = &cobra.Command{
		Use:   "go-geo-replay [flags]",
		Short: "Temporal replay of geolocated public-works records",
		Long: `go-geo-replay steps a month-bucketed timeline over a GeoJSON dataset of
dated records, resolving which records are visible at each month and
accumulating the executed budget alongside.

The root command replays the whole timeline in one pass and prints a
per-month report. Use the play subcommand for a live animated replay.

Examples:
  go-geo-replay --data obras.geojson --exec exec.csv --boundary boundary.geojson
  go-geo-replay --config replay.yaml --output json
  go-geo-replay --output summary --top-n 5
  go-geo-replay play --tick-ms 250`,
		RunE: runExport,
	}
)

const defaultLogFile = "~/.go-geo-replay/logs/app.log"

func init() {
	// Config and input data
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML config file (env GEOREPLAY_* still overrides)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "",
		"GeoJSON record file path")
	rootCmd.PersistentFlags().StringVar(&execFile, "exec", "",
		"Execution CSV file path (date;amount rows)")
	rootCmd.PersistentFlags().StringVar(&boundaryFile, "boundary", "",
		"GeoJSON boundary file path")
	rootCmd.PersistentFlags().StringVar(&dateProperty, "date-property", "",
		"Feature property holding the record date")

	// Timeline
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for date interpretation (e.g., Europe/Madrid)")
	rootCmd.PersistentFlags().StringVar(&startMonth, "start-month", "",
		"First month of the timeline (YYYY-MM)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.PersistentFlags().IntVar(&topN, "top-n", 0,
		"Ranking size (0 = configured default)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// buildConfig layers CLI flags on top of the file/env configuration. The
// config file path itself comes from --config or GEOREPLAY_CONFIG.
func buildConfig() (*replay.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("GEOREPLAY_CONFIG")
	}
	cfg, err := replay.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if dataFile != "" {
		cfg.DataFile = expandPath(dataFile)
	}
	if execFile != "" {
		cfg.ExecFile = expandPath(execFile)
	}
	if boundaryFile != "" {
		cfg.BoundaryFile = expandPath(boundaryFile)
	}
	if dateProperty != "" {
		cfg.DateProperty = dateProperty
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if startMonth != "" {
		cfg.StartMonth = startMonth
	}
	if topN > 0 {
		cfg.TopN = topN
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initRuntime(cfg *replay.Config) error {
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = expandPath(defaultLogFile)
	}
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(cfg.LogLevel, logFile, debug)
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if err := initRuntime(cfg); err != nil {
		return err
	}

	f, err := formatter.NewFormatter(outputFormat, os.Stdout)
	if err != nil {
		return err
	}

	data, err := replay.LoadAll(cfg, nil)
	if err != nil {
		return err
	}
	rows, err := replay.ExportRows(cfg, data)
	if err != nil {
		return err
	}
	return f.Format(rows)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
