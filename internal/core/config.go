package core

import "time"

// DefaultTickInterval is the fixed simulation step (~90 Hz).
// Physics constants are tuned against it; changing it changes gameplay feel.
const DefaultTickInterval = 11 * time.Millisecond

// RuntimeConfig contains configuration passed to the engine at initialization.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Simulation step
	Seed         int64         // RNG seed for deterministic gate placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: DefaultTickInterval,
		Seed:         0, // 0 means use current time in platform layer
	}
}
