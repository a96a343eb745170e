// Package config holds the run configuration for the converter:
// depth calibration, quality thresholds, per-rule policies, and
// calibration-point culling. Defaults cover a standard probe; a YAML
// file overrides them per campaign. Log settings come from the
// environment, matching the deployment convention of the other field
// tooling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

// Config holds all converter settings.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Calibration CalibrationConfig `yaml:"calibration"`
	Quality     QualityConfig     `yaml:"quality"`
	CalPoints   CalPointsConfig   `yaml:"calibration_points"`
}

// CalibrationConfig is the optional linear depth calibration.
type CalibrationConfig struct {
	Scale   float64 `yaml:"scale"`
	OffsetM float64 `yaml:"offset_m"`
}

// QualityConfig holds threshold values and per-rule policies.
type QualityConfig struct {
	MaxDepthM     float64 `yaml:"max_depth_m"`
	MinSatellites int     `yaml:"min_satellites"`

	// Policies maps rule name to "flag", "drop", or "off". Unlisted
	// rules default to "flag", except the calibration culls which
	// default to "drop".
	Policies map[string]string `yaml:"policies"`
}

// CalPointsConfig recognizes operator calibration sequences.
type CalPointsConfig struct {
	CounterPrefix int     `yaml:"counter_prefix"`
	DepthMinM     float64 `yaml:"depth_min_m"`
	DepthMaxM     float64 `yaml:"depth_max_m"`
	Window        int     `yaml:"window"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "text"),
		Calibration: CalibrationConfig{Scale: 1},
		Quality: QualityConfig{
			MaxDepthM:     domain.DefaultThresholds.MaxDepthM,
			MinSatellites: domain.DefaultThresholds.MinSatellites,
			Policies: map[string]string{
				string(domain.RuleCalibrationPrefix):  string(domain.PolicyDrop),
				string(domain.RuleCalibrationPattern): string(domain.PolicyDrop),
			},
		},
		CalPoints: CalPointsConfig{
			CounterPrefix: domain.DefaultCalibrationCull.CounterPrefix,
			DepthMinM:     domain.DefaultCalibrationCull.DepthMinM,
			DepthMaxM:     domain.DefaultCalibrationCull.DepthMaxM,
			Window:        domain.DefaultCalibrationCull.Window,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path, or
// plain defaults when path is empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that would make a run meaningless.
func (c *Config) Validate() error {
	if c.Calibration.Scale == 0 {
		return fmt.Errorf("calibration.scale must be non-zero")
	}
	if c.Quality.MaxDepthM < 0 {
		return fmt.Errorf("quality.max_depth_m must be >= 0")
	}
	if c.Quality.MinSatellites < 0 {
		return fmt.Errorf("quality.min_satellites must be >= 0")
	}
	if c.CalPoints.DepthMaxM < c.CalPoints.DepthMinM {
		return fmt.Errorf("calibration_points: depth_max_m below depth_min_m")
	}
	return c.Policies().Validate()
}

// DomainCalibration converts to the domain type.
func (c *Config) DomainCalibration() domain.Calibration {
	return domain.Calibration{Scale: c.Calibration.Scale, OffsetM: c.Calibration.OffsetM}
}

// Thresholds converts to the domain type.
func (c *Config) Thresholds() domain.Thresholds {
	return domain.Thresholds{MaxDepthM: c.Quality.MaxDepthM, MinSatellites: c.Quality.MinSatellites}
}

// Policies converts the policy table to the domain type.
func (c *Config) Policies() domain.Policies {
	pol := make(domain.Policies, len(c.Quality.Policies))
	for rule, p := range c.Quality.Policies {
		pol[domain.Rule(rule)] = domain.Policy(p)
	}
	return pol
}

// CalibrationCull converts to the domain type.
func (c *Config) CalibrationCull() domain.CalibrationCull {
	return domain.CalibrationCull{
		CounterPrefix: c.CalPoints.CounterPrefix,
		DepthMinM:     c.CalPoints.DepthMinM,
		DepthMaxM:     c.CalPoints.DepthMaxM,
		Window:        c.CalPoints.Window,
	}
}

// DropAll forces every rule to the drop policy; used by the converter's
// -drop flag to emit a fully filtered table.
func (c *Config) DropAll() {
	if c.Quality.Policies == nil {
		c.Quality.Policies = make(map[string]string, len(domain.Rules))
	}
	for _, r := range domain.Rules {
		if c.Quality.Policies[string(r)] != string(domain.PolicyOff) {
			c.Quality.Policies[string(r)] = string(domain.PolicyDrop)
		}
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
