package flappy

import (
	"sync/atomic"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Collision is the outcome of one collision check.
type Collision int

const (
	CollisionNone   Collision = iota
	CollisionGround           // Terminal
	CollisionGate             // Advisory
)

// String returns a human-readable name for the collision.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionGround:
		return "ground"
	case CollisionGate:
		return "gate"
	default:
		return "unknown"
	}
}

// GeometrySource yields the gate rectangles for one check. Drain is
// destructive: a second call without new input returns nothing.
type GeometrySource interface {
	Drain() []core.Rect
}

// GeometryBag is an unordered collection of rectangles shared between a
// single producer (the render pass) and a single consumer (the tick).
// Add and Drain are lock-free and safe to call concurrently.
type GeometryBag struct {
	rects atomic.Pointer[[]core.Rect]
}

// Add appends rectangles to the bag.
func (b *GeometryBag) Add(rs ...core.Rect) {
	if len(rs) == 0 {
		return
	}
	for {
		old := b.rects.Load()
		var next []core.Rect
		if old != nil {
			next = make([]core.Rect, len(*old), len(*old)+len(rs))
			copy(next, *old)
		}
		next = append(next, rs...)
		if b.rects.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Drain removes and returns everything in the bag.
func (b *GeometryBag) Drain() []core.Rect {
	p := b.rects.Swap(nil)
	if p == nil {
		return nil
	}
	return *p
}

// Len returns the number of rectangles currently held.
func (b *GeometryBag) Len() int {
	p := b.rects.Load()
	if p == nil {
		return 0
	}
	return len(*p)
}

// Rects is a GeometrySource over a fixed slice, used when geometry is
// computed inside the tick.
type Rects []core.Rect

// Drain implements GeometrySource.
func (r *Rects) Drain() []core.Rect {
	out := *r
	*r = nil
	return out
}

// Check tests the flyer against the ground plane, then against gate
// geometry. Ground takes precedence. The source is always drained in full so
// stale rectangles never carry into a later check.
func Check(flyer core.Rect, groundY int, src GeometrySource) Collision {
	rects := src.Drain()

	if flyer.Bottom() >= groundY {
		return CollisionGround
	}

	for _, r := range rects {
		if r.Intersects(flyer) {
			return CollisionGate
		}
	}
	return CollisionNone
}
