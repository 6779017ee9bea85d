package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// State is the game state machine's current state.
type State int

const (
	StateWaiting  State = iota // Idle bob, no gates, no gravity
	StatePlaying               // Full simulation
	StateCrashed               // Gate hit; integration continues until the ground
	StateTerminal              // Ground hit; frozen until Restart
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateCrashed:
		return "crashed"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Phase classifies vertical motion for sprite selection only.
type Phase int

const (
	PhaseGliding Phase = iota // Boost spent, not yet falling long enough
	PhaseRising               // Flap boost active
	PhaseFalling              // Boost spent for at least the fall delay
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseGliding:
		return "gliding"
	case PhaseRising:
		return "rising"
	case PhaseFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// phaseTracker derives Phase from the integrator's boost tag.
type phaseTracker struct {
	fallDelay int
	sinceRise int // Consecutive non-rising ticks
	phase     Phase
}

func (p *phaseTracker) reset() {
	p.sinceRise = 0
	p.phase = PhaseGliding
}

func (p *phaseTracker) rise() {
	p.sinceRise = 0
	p.phase = PhaseRising
}

func (p *phaseTracker) update(rising bool) {
	if rising {
		p.rise()
		return
	}
	p.sinceRise++
	if p.sinceRise >= p.fallDelay {
		p.phase = PhaseFalling
	} else {
		p.phase = PhaseGliding
	}
}

// Sprite tilt limits in degrees; negative tilts nose-up.
const (
	tiltStep    = 10
	tiltRiseMax = -30
	tiltFallMax = 90
	wingFrames  = 3
	bobWrap     = 360.0
)

// Animation is the sprite clock. It runs beside the physics tick but never
// feeds back into it.
type Animation struct {
	period    int
	bobAmp    float64
	bobStep   float64
	counter   int
	wing      int
	tilt      int
	bobPhase  float64
	bobOffset float64
}

func newAnimation(cfg config.FlyerConfig) Animation {
	a := Animation{
		period:  cfg.WingPeriod,
		bobAmp:  cfg.BobAmplitude,
		bobStep: cfg.BobStep,
	}
	a.reset()
	return a
}

func (a *Animation) reset() {
	a.counter = 0
	a.wing = 1
	a.tilt = 0
	a.bobPhase = 0
	a.bobOffset = 0
}

// advance moves the sprite clock by one tick.
func (a *Animation) advance(state State, phase Phase) {
	// Wings freeze once the flight is doomed
	if a.counter == 0 && (state == StateWaiting || state == StatePlaying) {
		a.wing = (a.wing + 1) % wingFrames
	}
	a.counter++
	if a.counter >= a.period {
		a.counter = 0
	}

	if state == StateWaiting {
		a.tilt = 0
		a.bobOffset = -a.bobAmp * math.Sin(a.bobPhase)
		if a.bobPhase >= bobWrap {
			a.bobPhase = 0
		} else {
			a.bobPhase += a.bobStep
		}
		return
	}

	a.bobOffset = 0
	switch phase {
	case PhaseRising:
		if a.tilt > tiltRiseMax {
			a.tilt -= tiltStep
		}
	case PhaseFalling:
		if a.tilt < tiltFallMax {
			a.tilt += tiltStep
		}
	}
}
