// Package config provides YAML-based configuration loading and validation
// for the flappy engine and its platform layers.
package config

import "time"

// FlappyConfig contains all tunable parameters of the game.
type FlappyConfig struct {
	World     WorldConfig     `yaml:"world"`
	Flyer     FlyerConfig     `yaml:"flyer"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Collision CollisionConfig `yaml:"collision"`
	Audio     AudioConfig     `yaml:"audio"`
}

// WorldConfig defines play field and obstacle dimensions in world pixels.
type WorldConfig struct {
	BackgroundWidth  int     `yaml:"background_width"`
	BackgroundHeight int     `yaml:"background_height"`
	GroundWidth      int     `yaml:"ground_width"`
	GroundHeight     int     `yaml:"ground_height"`
	PipeWidth        int     `yaml:"pipe_width"`
	PipeHeight       int     `yaml:"pipe_height"`
	GapRatio         float64 `yaml:"gap_ratio"`
}

// FlyerConfig defines the flyer's hitbox, start position and animation.
type FlyerConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	StartXRatio  float64 `yaml:"start_x_ratio"`
	StartYRatio  float64 `yaml:"start_y_ratio"`
	WingPeriod   int     `yaml:"wing_period"`
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobStep      float64 `yaml:"bob_step"`
}

// PhysicsConfig defines the motion model. All values are per tick, so they
// only hold their meaning at the configured TickInterval.
type PhysicsConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval"`
	HorizontalSpeed int           `yaml:"horizontal_speed"`
	Launch          float64       `yaml:"launch"`
	BoostDecay      float64       `yaml:"boost_decay"`
	Gravity         float64       `yaml:"gravity"`
	FallDelay       int           `yaml:"fall_delay"`
}

// GeometryMode selects where collision rectangles come from.
type GeometryMode string

const (
	// GeometryTick computes gate rectangles inside the simulation tick.
	GeometryTick GeometryMode = "tick"
	// GeometryRender consumes rectangles published by the previous render
	// pass, reproducing a one-frame collision lag.
	GeometryRender GeometryMode = "render"
)

// CollisionConfig defines the collision geometry source.
type CollisionConfig struct {
	Geometry GeometryMode `yaml:"geometry"`
}

// AudioConfig defines sound effect playback.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}
