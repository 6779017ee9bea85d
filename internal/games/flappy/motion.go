package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Motion integrates the flyer's position, velocity and acceleration.
//
// A flap sets a strong upward acceleration that decays by two boost-decay
// steps per tick while it still points up; once spent, acceleration is
// replaced by constant gravity. Integration is tied to the fixed tick.
type Motion struct {
	params config.PhysicsConfig

	position     core.Vector // Only the origin is meaningful: flyer top-left
	velocity     core.Vector
	acceleration core.Vector
	boosting     bool // Set by Launch, cleared when gravity takes over
}

// NewMotion creates a motion model resting at start.
func NewMotion(params config.PhysicsConfig, start core.Point) *Motion {
	m := &Motion{params: params}
	m.Reset(start)
	return m
}

// Reset restores construction-time state.
func (m *Motion) Reset(start core.Point) {
	m.position = core.Vector{Origin: start}
	m.velocity = core.Vector{}
	m.acceleration = core.Vector{}
	m.boosting = false
}

// Launch applies a flap: upward acceleration, residual speed cancelled.
func (m *Motion) Launch() {
	m.acceleration = core.NewVector(m.params.Launch, core.AngleUp, m.position.Origin)
	m.velocity = m.velocity.WithMagnitude(0)
	m.boosting = true
}

// Step advances one tick: move, update acceleration, accumulate velocity.
func (m *Motion) Step() {
	m.position = m.position.Translate(m.velocity)

	decay := core.NewVector(m.params.BoostDecay, core.AngleDown, m.position.Origin)
	m.acceleration = m.acceleration.Add(decay)
	if m.boosting && m.acceleration.PointsUp() {
		m.acceleration = m.acceleration.Add(decay)
	} else {
		m.acceleration = core.NewVector(m.params.Gravity, core.AngleDown, m.position.Origin)
		m.boosting = false
	}

	m.velocity = m.velocity.Add(m.acceleration)
}

// PinY places the flyer at vertical position y, keeping x.
func (m *Motion) PinY(y float64) {
	m.position = m.position.TranslateAbs(core.Point{X: m.position.Origin.X, Y: y})
}

// Position returns the flyer's top-left corner.
func (m *Motion) Position() core.Point { return m.position.Origin }

// Velocity returns the current velocity.
func (m *Motion) Velocity() core.Vector { return m.velocity }

// Acceleration returns the current acceleration.
func (m *Motion) Acceleration() core.Vector { return m.acceleration }

// Boosting reports whether the flap boost is still active.
func (m *Motion) Boosting() bool { return m.boosting }
