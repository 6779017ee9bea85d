package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Layout maps elapsed ticks to horizontal scroll offsets and gate geometry.
// All methods are pure.
type Layout struct {
	BackgroundW int
	BackgroundH int // Ground plane y
	GroundW     int
	GroundH     int
	PipeW       int
	PipeH       int
	Speed       int     // Horizontal scroll (px/tick)
	GapRatio    float64 // Share of the obstacle band left open
}

// NewLayout builds a layout from the world configuration.
func NewLayout(world config.WorldConfig, speed int) Layout {
	return Layout{
		BackgroundW: world.BackgroundWidth,
		BackgroundH: world.BackgroundHeight,
		GroundW:     world.GroundWidth,
		GroundH:     world.GroundHeight,
		PipeW:       world.PipeWidth,
		PipeH:       world.PipeHeight,
		Speed:       speed,
		GapRatio:    world.GapRatio,
	}
}

// Scroll returns the total distance travelled after t ticks.
func (l Layout) Scroll(t int) int {
	return t * l.Speed
}

// GroundOffset returns the ground tile offset after t ticks.
func (l Layout) GroundOffset(t int) int {
	return l.Scroll(t) % (l.GroundW - 1)
}

// GateX returns a gate's screen x after t ticks and whether it has spawned.
func (l Layout) GateX(t, spawnTick int) (int, bool) {
	scroll := l.Scroll(t)
	if scroll < spawnTick {
		return 0, false
	}
	return l.BackgroundW - (scroll - spawnTick), true
}

// Placement is where a spawned gate is drawn on this frame.
type Placement struct {
	Index  int // Position in the gate list
	X      int
	Top    core.Rect
	Bottom core.Rect
}

// Place computes placements for every spawned gate. Gates are spawn-ordered,
// so the scan stops at the first one that has not spawned yet.
func (l Layout) Place(t int, gates []Gate) []Placement {
	band := float64(l.PipeH - l.GroundH)
	factor := band * (1.0 - l.GapRatio)
	topOffset := band * l.GapRatio

	var out []Placement
	for i, g := range gates {
		x, ok := l.GateX(t, g.SpawnTick)
		if !ok {
			break
		}
		hole := g.GapFraction * factor
		out = append(out, Placement{
			Index:  i,
			X:      x,
			Top:    core.NewRect(x, int(-hole-topOffset), l.PipeW, l.PipeH),
			Bottom: core.NewRect(x, int(float64(l.BackgroundH)-hole), l.PipeW, l.PipeH),
		})
	}
	return out
}

// Geometry flattens placements into collision rectangles.
func Geometry(placements []Placement) []core.Rect {
	rects := make([]core.Rect, 0, len(placements)*2)
	for _, p := range placements {
		rects = append(rects, p.Bottom, p.Top)
	}
	return rects
}
