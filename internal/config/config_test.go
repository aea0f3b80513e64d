package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/anand-ps/reverie/internal/engine"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero step rate", func(c *Config) { c.StepRate = 0 }, engine.ErrStepSize},
		{"negative extent", func(c *Config) { c.Width = -10 }, engine.ErrExtent},
		{"zero epsilon", func(c *Config) { c.Flow.Epsilon = 0 }, engine.ErrSoftening},
		{"damping at one", func(c *Config) { c.Flow.Damping = 1 }, engine.ErrDamping},
		{"bad boundary", func(c *Config) { c.Flow.Boundary = "teleport" }, engine.ErrUnknownBoundary},
		{"zero rows", func(c *Config) { c.Grid.Rows = 0 }, engine.ErrGridSize},
		{"zero threshold", func(c *Config) { c.Grid.Threshold = 0 }, engine.ErrThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Model = "sandpile"
	cfg.StepRate = 60
	cfg.Grid.DropRate = 45
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Model != "sandpile" || loaded.StepRate != 60 || loaded.Grid.DropRate != 45 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	// Unspecified fields still come from the defaults.
	if loaded.Flow.Epsilon != DefaultEpsilon {
		t.Errorf("defaults not layered under loaded file: %f", loaded.Flow.Epsilon)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStepSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepRate = 120
	if got := cfg.StepSize(); got != 1.0/120 {
		t.Errorf("step size %f, want %f", got, 1.0/120)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
	if GetPreset("nonsense") != nil {
		t.Error("unknown preset should return nil")
	}

	orbit := GetPreset("orbit")
	if orbit.Flow.Damping != 0 {
		t.Errorf("orbit preset should be undamped, got %f", orbit.Flow.Damping)
	}
}
