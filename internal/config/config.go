// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading is layered: defaults, then an optional YAML file, then env vars.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/brokerscore/internal/domain/fields"
	"github.com/okian/brokerscore/internal/domain/scoring"
	"github.com/okian/brokerscore/pkg/logger"
)

// Benchmark modes.
const (
	BenchmarkStatic     = "static"
	BenchmarkPopulation = "population"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SourcePath is the evaluation workbook (.xlsx).
	SourcePath string `koanf:"source_path"`

	// SheetName selects the worksheet by name; it wins over SheetIndex.
	SheetName string `koanf:"sheet_name"`
	// SheetIndex selects the worksheet by position.
	SheetIndex int `koanf:"sheet_index"`

	// TierTable selects the latency rule table: "A" or "B".
	TierTable string `koanf:"tier_table"`

	// MinAliasLength keeps shorter aliases out of substring matching.
	MinAliasLength int `koanf:"min_alias_length"`
	// FoldAccents enables the accent-insensitive column matching tier.
	FoldAccents bool `koanf:"fold_accents"`

	// NormalizeWorkers bounds per-row parallelism.
	NormalizeWorkers int `koanf:"normalize_workers"`

	// BenchmarkPath optionally points to a YAML benchmark snapshot.
	BenchmarkPath string `koanf:"benchmark_path"`
	// BenchmarkMode is "static" (snapshot) or "population" (computed on load).
	BenchmarkMode string `koanf:"benchmark_mode"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// ReloadInterval re-reads the source periodically when serving; 0 disables.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           string(logger.FormatText),
		Addr:                ":9080",
		TierTable:           scoring.TableNameA,
		MinAliasLength:      fields.DefaultMinAliasLength,
		FoldAccents:         true,
		NormalizeWorkers:    runtime.NumCPU(),
		BenchmarkMode:       BenchmarkStatic,
		MaxLeaderboardLimit: 100,
	}
}

// Validate reports the first invalid setting as ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive, got %d", ErrInvalidConfig, c.MaxLeaderboardLimit)
	case c.NormalizeWorkers < 1:
		return fmt.Errorf("%w: normalize_workers must be positive, got %d", ErrInvalidConfig, c.NormalizeWorkers)
	case c.MinAliasLength < 0:
		return fmt.Errorf("%w: min_alias_length must not be negative", ErrInvalidConfig)
	case c.SheetIndex < 0:
		return fmt.Errorf("%w: sheet_index must not be negative", ErrInvalidConfig)
	case c.ReloadInterval < 0:
		return fmt.Errorf("%w: reload_interval must not be negative", ErrInvalidConfig)
	}

	if _, err := scoring.TableByName(c.TierTable); err != nil {
		return fmt.Errorf("%w: tier_table: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.BenchmarkMode) {
	case BenchmarkStatic, BenchmarkPopulation:
	default:
		return fmt.Errorf("%w: benchmark_mode %q (want static or population)", ErrInvalidConfig, c.BenchmarkMode)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: log_format: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Table returns the configured latency rule table.
func (c *Config) Table() scoring.Table {
	t, err := scoring.TableByName(c.TierTable)
	if err != nil {
		return scoring.TableA
	}
	return t
}

// PopulationBenchmark reports whether the benchmark is computed on load.
func (c *Config) PopulationBenchmark() bool {
	return strings.EqualFold(c.BenchmarkMode, BenchmarkPopulation)
}
