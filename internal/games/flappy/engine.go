// Package flappy implements the flappy simulation engine: a flyer under
// gravity, a fixed batch of scrolling gates, collision, scoring and the game
// state machine. Rendering, audio and input devices live elsewhere.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// StepResult is returned by Engine.Step after each simulation tick.
type StepResult struct {
	From, To  State
	Collision Collision
	Gained    int  // Points scored this tick
	Quit      bool // Quit was requested; the host decides what to do
}

// Engine is the single-threaded simulation core. It owns game state, score,
// motion and gates; nothing else writes them.
type Engine struct {
	cfg    config.FlappyConfig
	layout Layout
	start  core.Point

	motion  *Motion
	gen     *Generator
	gates   []Gate
	tracker Tracker
	state   State
	phase   phaseTracker
	anim    Animation
	elapsed int    // Scroll clock, zeroed on the first flap
	tick    uint64 // Ticks since construction

	geometry *GeometryBag // Filled by the renderer in render mode
	sound    core.SoundPlayer
}

// New creates an engine in the Waiting state.
func New(cfg config.FlappyConfig, seed int64) *Engine {
	e := &Engine{
		cfg:    cfg,
		layout: NewLayout(cfg.World, cfg.Physics.HorizontalSpeed),
		start: core.Point{
			X: float64(cfg.World.BackgroundWidth) * cfg.Flyer.StartXRatio,
			Y: float64(cfg.World.BackgroundHeight) * cfg.Flyer.StartYRatio,
		},
		gen:      NewGenerator(seed),
		phase:    phaseTracker{fallDelay: cfg.Physics.FallDelay},
		anim:     newAnimation(cfg.Flyer),
		geometry: &GeometryBag{},
		sound:    core.NopSound{},
	}
	e.motion = NewMotion(cfg.Physics, e.start)
	e.reset()
	return e
}

// SetSound routes audio cues to p. A nil player silences the engine.
func (e *Engine) SetSound(p core.SoundPlayer) {
	if p == nil {
		p = core.NopSound{}
	}
	e.sound = p
}

// Geometry returns the rectangle bag the renderer publishes into.
func (e *Engine) Geometry() *GeometryBag {
	return e.geometry
}

// Layout returns the placement function used by the engine.
func (e *Engine) Layout() Layout {
	return e.layout
}

// reset restores construction-time defaults.
func (e *Engine) reset() {
	e.motion.Reset(e.start)
	e.gates = nil
	e.tracker.Reset()
	e.state = StateWaiting
	e.phase.reset()
	e.anim.reset()
	e.elapsed = 0
	e.geometry.Drain()
}

// Flap starts the game from Waiting or relaunches mid-flight.
// It is a no-op once the flight is doomed.
func (e *Engine) Flap() {
	switch e.state {
	case StateWaiting:
		e.elapsed = 0
		e.gates = e.gen.Generate()
		e.state = StatePlaying
	case StatePlaying:
	default:
		return
	}

	e.motion.Launch()
	e.phase.rise()
	e.sound.Play(core.SoundJump)
}

// Restart returns to Waiting. Only valid in Terminal.
func (e *Engine) Restart() {
	if e.state != StateTerminal {
		return
	}
	e.reset()
}

// Step applies the frame's input and advances the simulation by one tick.
func (e *Engine) Step(in core.InputFrame) StepResult {
	if in.Has(core.ActionRestart) {
		e.Restart()
	}
	if in.Has(core.ActionFlap) {
		e.Flap()
	}

	res := StepResult{From: e.state, Quit: in.Has(core.ActionQuit)}
	e.tick++
	e.anim.advance(e.state, e.phase.phase)

	switch e.state {
	case StatePlaying, StateCrashed:
		res.Collision = e.detect()
		switch res.Collision {
		case CollisionGround:
			e.state = StateTerminal
			e.motion.PinY(float64(e.layout.BackgroundH - e.cfg.Flyer.Height))
			e.sound.Play(core.SoundGround)
		case CollisionGate:
			if e.state == StatePlaying {
				e.state = StateCrashed
				e.sound.Play(core.SoundCrash)
			}
		}

		if e.state != StateTerminal {
			e.motion.Step()
			e.phase.update(e.motion.Boosting())
			res.Gained = e.score()
		}
	default:
		// Nothing consumes geometry here; drop whatever the renderer sent.
		e.geometry.Drain()
	}

	if e.state == StateWaiting || e.state == StatePlaying {
		e.elapsed++
	}

	res.To = e.state
	return res
}

// detect runs the collision check against the configured geometry source.
func (e *Engine) detect() Collision {
	var src GeometrySource = e.geometry
	if e.cfg.Collision.Geometry == config.GeometryTick {
		// The bag still gets emptied so renderer output never piles up.
		e.geometry.Drain()
		rects := Rects(Geometry(e.layout.Place(e.elapsed, e.gates)))
		src = &rects
	}
	return Check(e.FlyerBounds(), e.layout.BackgroundH, src)
}

// score updates the tracker against the current placements.
func (e *Engine) score() int {
	placements := e.layout.Place(e.elapsed, e.gates)
	gained := e.tracker.Update(e.motion.Position().X, placements, e.gates)
	for i := 0; i < gained; i++ {
		e.sound.Play(core.SoundScore)
	}
	return gained
}

// FlyerBounds returns the flyer's hitbox in world pixels.
func (e *Engine) FlyerBounds() core.Rect {
	p := e.motion.Position()
	return core.NewRect(int(p.X), int(p.Y), e.cfg.Flyer.Width, e.cfg.Flyer.Height)
}

// State returns the current game state.
func (e *Engine) State() State { return e.state }

// Phase returns the current motion phase.
func (e *Engine) Phase() Phase { return e.phase.phase }

// Score returns the current score.
func (e *Engine) Score() int { return e.tracker.Score() }

// Elapsed returns the scroll clock.
func (e *Engine) Elapsed() int { return e.elapsed }

// Motion exposes the integrator for inspection.
func (e *Engine) Motion() *Motion { return e.motion }

// Gates returns a copy of the current gate list.
func (e *Engine) Gates() []Gate {
	if e.gates == nil {
		return nil
	}
	out := make([]Gate, len(e.gates))
	copy(out, e.gates)
	return out
}
