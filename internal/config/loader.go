package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// LoadFlappy loads the game configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the keys it sets.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// parse decodes YAML over the hardcoded defaults.
func parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// Marshal encodes the configuration back to YAML.
func (c FlappyConfig) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return out, nil
}

// Validate reports every out-of-range field at once.
func (c FlappyConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, name, v))
		}
	}
	ratio := func(name string, v float64) {
		if v < 0 || v >= 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be in [0, 1), got %v", ErrInvalid, name, v))
		}
	}

	positive("world.background_width", float64(c.World.BackgroundWidth))
	positive("world.background_height", float64(c.World.BackgroundHeight))
	positive("world.pipe_width", float64(c.World.PipeWidth))
	positive("world.pipe_height", float64(c.World.PipeHeight))
	positive("world.ground_height", float64(c.World.GroundHeight))
	if c.World.GroundWidth < 2 {
		errs = append(errs, fmt.Errorf("%w: world.ground_width must be at least 2, got %d", ErrInvalid, c.World.GroundWidth))
	}
	if c.World.PipeHeight <= c.World.GroundHeight {
		errs = append(errs, fmt.Errorf("%w: world.pipe_height must exceed world.ground_height", ErrInvalid))
	}
	ratio("world.gap_ratio", c.World.GapRatio)

	positive("flyer.width", float64(c.Flyer.Width))
	positive("flyer.height", float64(c.Flyer.Height))
	positive("flyer.wing_period", float64(c.Flyer.WingPeriod))
	ratio("flyer.start_x_ratio", c.Flyer.StartXRatio)
	ratio("flyer.start_y_ratio", c.Flyer.StartYRatio)

	positive("physics.tick_interval", float64(c.Physics.TickInterval))
	positive("physics.horizontal_speed", float64(c.Physics.HorizontalSpeed))
	positive("physics.launch", c.Physics.Launch)
	positive("physics.boost_decay", c.Physics.BoostDecay)
	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.fall_delay", float64(c.Physics.FallDelay))

	switch c.Collision.Geometry {
	case GeometryTick, GeometryRender:
	default:
		errs = append(errs, fmt.Errorf("%w: collision.geometry must be %q or %q, got %q",
			ErrInvalid, GeometryTick, GeometryRender, c.Collision.Geometry))
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("%w: audio.volume must be in [0, 1], got %v", ErrInvalid, c.Audio.Volume))
	}

	return errors.Join(errs...)
}
