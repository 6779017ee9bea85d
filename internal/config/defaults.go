package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used if the embedded file fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			BackgroundWidth:  800,
			BackgroundHeight: 500,
			GroundWidth:      840,
			GroundHeight:     100,
			PipeWidth:        52,
			PipeHeight:       400,
			GapRatio:         0.25,
		},
		Flyer: FlyerConfig{
			Width:        34,
			Height:       24,
			StartXRatio:  0.4,
			StartYRatio:  0.54,
			WingPeriod:   9,
			BobAmplitude: 10,
			BobStep:      0.15,
		},
		Physics: PhysicsConfig{
			TickInterval:    core.DefaultTickInterval,
			HorizontalSpeed: 5,
			Launch:          8,
			BoostDecay:      1.0,
			Gravity:         0.7,
			FallDelay:       20,
		},
		Collision: CollisionConfig{
			Geometry: GeometryTick,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
