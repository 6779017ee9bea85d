package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestRuntimeConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	tests := []struct {
		name     string
		tick     time.Duration
		seed     int64
		wantTick time.Duration
	}{
		{"config tick", 0, 42, cfg.Physics.TickInterval},
		{"flag tick", 20 * time.Millisecond, 42, 20 * time.Millisecond},
		{"time seed", 0, 0, cfg.Physics.TickInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldTick, oldSeed := flagTick, flagSeed
			t.Cleanup(func() { flagTick, flagSeed = oldTick, oldSeed })
			flagTick, flagSeed = tt.tick, tt.seed

			rc := runtimeConfig(cfg)

			if rc.TickInterval != tt.wantTick {
				t.Errorf("tick = %v, want %v", rc.TickInterval, tt.wantTick)
			}
			if tt.seed != 0 && rc.Seed != tt.seed {
				t.Errorf("seed = %d, want %d", rc.Seed, tt.seed)
			}
			if tt.seed == 0 && rc.Seed == 0 {
				t.Error("seed not derived from time")
			}
			if rc.ScreenW <= 0 || rc.ScreenH <= 0 {
				t.Errorf("screen = %dx%d", rc.ScreenW, rc.ScreenH)
			}
		})
	}
}

func TestDefaultTickMatchesConfig(t *testing.T) {
	if got := config.DefaultFlappyConfig().Physics.TickInterval; got != core.DefaultTickInterval {
		t.Errorf("config tick = %v, core default = %v", got, core.DefaultTickInterval)
	}
}

func TestNewLogger(t *testing.T) {
	old := flagLogLevel
	t.Cleanup(func() { flagLogLevel = old })

	flagLogLevel = "debug"
	logger, err := newLogger(io.Discard, "test")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}

	flagLogLevel = "loud"
	if _, err := newLogger(io.Discard, "test"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"play", "scores", "serve", "config"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
