// Package config loads the stagegate configuration file and maps it onto
// gate thresholds and storage settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rfontaine/stagegate/internal/gate"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the default config file location.
	EnvConfigPath = "STAGEGATE_CONFIG"
	// EnvDBPath overrides the database path from config.
	EnvDBPath = "STAGEGATE_DB"

	defaultConfigFile = ".stagegate/config.yaml"
	defaultDBFile     = ".stagegate/stagegate.db"
)

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ConfidenceConfig struct {
	Yellow float64 `yaml:"yellow"`
	Green  float64 `yaml:"green"`
}

type DiscoveryConfig struct {
	MinContextChars        int     `yaml:"min_context_chars"`
	MinAcceptanceCriteria  int     `yaml:"min_acceptance_criteria"`
	ContextConfidenceFloor float64 `yaml:"context_confidence_floor"`
}

type PlanConfig struct {
	MaxImplementationTaskMin int `yaml:"max_implementation_task_min"`
}

type ImplementationConfig struct {
	CoverageThreshold float64 `yaml:"coverage_threshold"`
}

type SequenceConfig struct {
	// ResearchTerminal is "plan" or "review".
	ResearchTerminal string `yaml:"research_terminal"`
}

// Config is the full configuration document. Every field has a working
// default; a missing file yields a fully defaulted config.
type Config struct {
	Database       DatabaseConfig       `yaml:"database"`
	Confidence     ConfidenceConfig     `yaml:"confidence"`
	Discovery      DiscoveryConfig      `yaml:"discovery"`
	Plan           PlanConfig           `yaml:"plan"`
	Implementation ImplementationConfig `yaml:"implementation"`
	Sequence       SequenceConfig       `yaml:"sequence"`
}

// Default returns a config mirroring gate.DefaultOptions.
func Default() Config {
	opts := gate.DefaultOptions()
	return Config{
		Database: DatabaseConfig{Path: ""},
		Confidence: ConfidenceConfig{
			Yellow: opts.Thresholds.Yellow,
			Green:  opts.Thresholds.Green,
		},
		Discovery: DiscoveryConfig{
			MinContextChars:        opts.MinContextLen,
			MinAcceptanceCriteria:  opts.MinAcceptanceCriteria,
			ContextConfidenceFloor: opts.ContextConfidenceFloor,
		},
		Plan:           PlanConfig{MaxImplementationTaskMin: opts.MaxImplementationTaskMin},
		Implementation: ImplementationConfig{CoverageThreshold: opts.CoverageThreshold},
		Sequence:       SequenceConfig{ResearchTerminal: string(opts.ResearchTerminal)},
	}
}

// Load reads the config at path, layering it over defaults. A missing file
// is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the config from STAGEGATE_CONFIG, falling back to
// ~/.stagegate/config.yaml.
func LoadFromEnv() (Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, defaultConfigFile)
	}
	return Load(path)
}

func (c Config) validate() error {
	if c.Confidence.Yellow <= 0 || c.Confidence.Green <= 0 {
		return fmt.Errorf("confidence thresholds must be positive")
	}
	if c.Confidence.Yellow >= c.Confidence.Green {
		return fmt.Errorf("confidence.yellow (%.2f) must be below confidence.green (%.2f)",
			c.Confidence.Yellow, c.Confidence.Green)
	}
	switch gate.ResearchTerminal(c.Sequence.ResearchTerminal) {
	case gate.ResearchEndsAtPlan, gate.ResearchEndsAtReview:
	default:
		return fmt.Errorf("sequence.research_terminal must be %q or %q, got %q",
			gate.ResearchEndsAtPlan, gate.ResearchEndsAtReview, c.Sequence.ResearchTerminal)
	}
	if c.Discovery.MinContextChars <= 0 || c.Discovery.MinAcceptanceCriteria <= 0 {
		return fmt.Errorf("discovery thresholds must be positive")
	}
	if c.Plan.MaxImplementationTaskMin <= 0 {
		return fmt.Errorf("plan.max_implementation_task_min must be positive")
	}
	if c.Implementation.CoverageThreshold < 0 || c.Implementation.CoverageThreshold > 1 {
		return fmt.Errorf("implementation.coverage_threshold must be in [0,1]")
	}
	return nil
}

// GateOptions maps the config onto gate thresholds.
func (c Config) GateOptions() gate.Options {
	opts := gate.DefaultOptions()
	opts.Thresholds.Yellow = c.Confidence.Yellow
	opts.Thresholds.Green = c.Confidence.Green
	opts.MinContextLen = c.Discovery.MinContextChars
	opts.MinAcceptanceCriteria = c.Discovery.MinAcceptanceCriteria
	opts.ContextConfidenceFloor = c.Discovery.ContextConfidenceFloor
	opts.MaxImplementationTaskMin = c.Plan.MaxImplementationTaskMin
	opts.CoverageThreshold = c.Implementation.CoverageThreshold
	opts.ResearchTerminal = gate.ResearchTerminal(c.Sequence.ResearchTerminal)
	return opts
}

// DBPath resolves the database location: STAGEGATE_DB, then the config
// file's database.path, then ~/.stagegate/stagegate.db.
func (c Config) DBPath() (string, error) {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p, nil
	}
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, defaultDBFile), nil
}
