package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anand-ps/reverie/internal/engine"
)

const (
	DefaultStepRate  = 120.0
	DefaultWidth     = 100.0
	DefaultHeight    = 100.0
	DefaultEpsilon   = 0.05
	DefaultAccel     = 400.0
	DefaultDamping   = 0.002
	DefaultBeta      = 0.5
	DefaultThreshold = 4
	DefaultRows      = 64
	DefaultCols      = 64
)

// Config is the full engine configuration, loadable from YAML.
type Config struct {
	Model    string  `yaml:"model"`
	StepRate float64 `yaml:"step_rate"` // fixed simulation steps per second
	Seed     int64   `yaml:"seed"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`

	Flow FlowConfig `yaml:"flow"`
	Grid GridConfig `yaml:"grid"`
}

// FlowConfig tunes the continuous family.
type FlowConfig struct {
	Epsilon        float64 `yaml:"epsilon"`
	AccelScale     float64 `yaml:"accel_scale"`
	Damping        float64 `yaml:"damping"`
	Beta           float64 `yaml:"beta"`
	SourceStrength float64 `yaml:"source_strength"`
	PickRadius     float64 `yaml:"pick_radius"`
	LaunchGain     float64 `yaml:"launch_gain"`
	Restitution    float64 `yaml:"restitution"`
	Margin         float64 `yaml:"margin"`
	TrailLen       int     `yaml:"trail_len"`
	Boundary       string  `yaml:"boundary"` // wrap | bounce | remove
	Repel          bool    `yaml:"repel"`
}

// GridConfig tunes the discrete family.
type GridConfig struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	Wrap       bool    `yaml:"wrap"`
	FadeStep   float64 `yaml:"fade_step"`
	Threshold  int     `yaml:"threshold"`
	DropMode   string  `yaml:"drop_mode"` // fixed | random
	DropRate   float64 `yaml:"drop_rate"` // automatic drops per second
	HistoryLen int     `yaml:"history_len"`
}

// DefaultConfig returns the tuning the interactive simulations ship with.
func DefaultConfig() *Config {
	return &Config{
		Model:    "field",
		StepRate: DefaultStepRate,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Flow: FlowConfig{
			Epsilon:        DefaultEpsilon,
			AccelScale:     DefaultAccel,
			Damping:        DefaultDamping,
			Beta:           DefaultBeta,
			SourceStrength: 1.0,
			PickRadius:     5.0,
			LaunchGain:     3.0,
			Restitution:    0.7,
			Margin:         20,
			TrailLen:       40,
			Boundary:       "remove",
		},
		Grid: GridConfig{
			Rows:       DefaultRows,
			Cols:       DefaultCols,
			Wrap:       true,
			FadeStep:   0.08,
			Threshold:  DefaultThreshold,
			DropMode:   "random",
			DropRate:   30,
			HistoryLen: 256,
		},
	}
}

// Load reads a YAML config over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the engine cannot run. These are the
// only domain errors; nothing in the per-tick path fails.
func (c *Config) Validate() error {
	if c.StepRate <= 0 {
		return engine.ErrStepSize
	}
	if c.Width <= 0 || c.Height <= 0 {
		return engine.ErrExtent
	}
	if c.Flow.Epsilon <= 0 {
		return engine.ErrSoftening
	}
	if c.Flow.Damping < 0 || c.Flow.Damping >= 1 {
		return engine.ErrDamping
	}
	switch c.Flow.Boundary {
	case "wrap", "bounce", "remove":
	default:
		return fmt.Errorf("%w: %q", engine.ErrUnknownBoundary, c.Flow.Boundary)
	}
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return engine.ErrGridSize
	}
	if c.Grid.Threshold <= 0 {
		return engine.ErrThreshold
	}
	switch c.Grid.DropMode {
	case "fixed", "random":
	default:
		return fmt.Errorf("config: unknown drop mode %q", c.Grid.DropMode)
	}
	return nil
}

// StepSize converts the step rate into a fixed step in seconds. Call
// Validate first.
func (c *Config) StepSize() float64 {
	return 1.0 / c.StepRate
}
