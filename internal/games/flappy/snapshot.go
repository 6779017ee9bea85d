package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Snapshot is an immutable copy of everything a renderer needs for one frame.
type Snapshot struct {
	Tick         uint64
	Elapsed      int
	State        State
	Phase        Phase
	Score        int
	Flyer        core.Rect // Hitbox in world pixels
	Position     core.Point
	Velocity     core.Vector
	Acceleration core.Vector
	Tilt         int     // Sprite rotation hint in degrees
	Wing         int     // Wing animation frame
	Bob          float64 // Waiting-state vertical draw offset
	GroundOffset int
	Gates        []Gate
}

// Snapshot returns the current engine state for rendering or verification.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:         e.tick,
		Elapsed:      e.elapsed,
		State:        e.state,
		Phase:        e.phase.phase,
		Score:        e.tracker.Score(),
		Flyer:        e.FlyerBounds(),
		Position:     e.motion.Position(),
		Velocity:     e.motion.Velocity(),
		Acceleration: e.motion.Acceleration(),
		Tilt:         e.anim.tilt,
		Wing:         e.anim.wing,
		Bob:          e.anim.bobOffset,
		GroundOffset: e.layout.GroundOffset(e.elapsed),
		Gates:        e.Gates(),
	}
}

// Placements recomputes where the snapshot's gates are drawn.
func (s Snapshot) Placements(l Layout) []Placement {
	return l.Place(s.Elapsed, s.Gates)
}
