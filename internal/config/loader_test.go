package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded defaults drifted from DefaultFlappyConfig():\n got  %+v\n want %+v", cfg, DefaultFlappyConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestLoadFlappyPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte("physics:\n  tick_interval: 16ms\n  gravity: 0.5\ncollision:\n  geometry: render\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}

	if cfg.Physics.TickInterval != 16*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 16ms", cfg.Physics.TickInterval)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("Gravity = %v, expected 0.5", cfg.Physics.Gravity)
	}
	if cfg.Collision.Geometry != GeometryRender {
		t.Errorf("Geometry = %q, expected %q", cfg.Collision.Geometry, GeometryRender)
	}

	// Untouched keys keep their defaults
	if cfg.Physics.Launch != 8 {
		t.Errorf("Launch = %v, expected default 8", cfg.Physics.Launch)
	}
	if cfg.World.BackgroundWidth != 800 {
		t.Errorf("BackgroundWidth = %d, expected default 800", cfg.World.BackgroundWidth)
	}
}

func TestLoadFlappyMissingFile(t *testing.T) {
	_, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadFlappy() should fail for a missing custom path")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadFlappyMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFlappy(path); err == nil {
		t.Error("LoadFlappy() should fail for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero background", func(c *FlappyConfig) { c.World.BackgroundWidth = 0 }},
		{"tiny ground tile", func(c *FlappyConfig) { c.World.GroundWidth = 1 }},
		{"pipe shorter than ground", func(c *FlappyConfig) { c.World.PipeHeight = c.World.GroundHeight }},
		{"gap ratio out of range", func(c *FlappyConfig) { c.World.GapRatio = 1.5 }},
		{"negative gravity", func(c *FlappyConfig) { c.Physics.Gravity = -1 }},
		{"zero tick", func(c *FlappyConfig) { c.Physics.TickInterval = 0 }},
		{"unknown geometry", func(c *FlappyConfig) { c.Collision.Geometry = "sometimes" }},
		{"loud audio", func(c *FlappyConfig) { c.Audio.Volume = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error should wrap ErrInvalid, got %v", err)
			}
		})
	}
}

func TestMarshalReparses(t *testing.T) {
	out, err := DefaultFlappyConfig().Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	cfg, err := parse(out)
	if err != nil {
		t.Fatalf("marshalled config does not parse: %v", err)
	}
	if cfg.Physics.TickInterval != DefaultFlappyConfig().Physics.TickInterval {
		t.Errorf("TickInterval = %v after round trip", cfg.Physics.TickInterval)
	}
}
