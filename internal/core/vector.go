package core

import "math"

// Screen-space directions in degrees. Y grows downward, so "down" is 90.
const (
	AngleRight = 0.0
	AngleDown  = 90.0
	AngleLeft  = 180.0
	AngleUp    = 270.0
)

// componentEpsilon is the magnitude below which a Cartesian component is
// treated as zero. Keeps axis-aligned vectors exactly axis-aligned after a
// round trip through sin/cos.
const componentEpsilon = 1e-9

// Vector is a polar vector anchored at an origin.
//
// The same type serves as a position (only Origin matters, moved with
// Translate) and as a velocity or acceleration (only Magnitude and Angle
// matter, combined with Add).
type Vector struct {
	Magnitude float64 // Never negative
	Angle     float64 // Degrees in [0, 360)
	Origin    Point
}

// NewVector creates a vector, normalizing the angle into [0, 360).
// A negative magnitude is folded into the direction.
func NewVector(magnitude, angle float64, origin Point) Vector {
	if magnitude < 0 {
		magnitude = -magnitude
		angle += 180
	}
	return Vector{Magnitude: magnitude, Angle: NormalizeAngle(angle), Origin: origin}
}

// FromComponents builds a vector from Cartesian components.
func FromComponents(dx, dy float64, origin Point) Vector {
	dx, dy = snap(dx), snap(dy)
	switch {
	case dx == 0 && dy == 0:
		return Vector{Origin: origin}
	case dx == 0 && dy > 0:
		return Vector{Magnitude: dy, Angle: AngleDown, Origin: origin}
	case dx == 0:
		return Vector{Magnitude: -dy, Angle: AngleUp, Origin: origin}
	case dy == 0 && dx > 0:
		return Vector{Magnitude: dx, Angle: AngleRight, Origin: origin}
	case dy == 0:
		return Vector{Magnitude: -dx, Angle: AngleLeft, Origin: origin}
	}
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	return Vector{Magnitude: math.Hypot(dx, dy), Angle: NormalizeAngle(angle), Origin: origin}
}

// Components returns the Cartesian (dx, dy) of the vector.
func (v Vector) Components() (dx, dy float64) {
	rad := v.Angle * math.Pi / 180
	return snap(v.Magnitude * math.Cos(rad)), snap(v.Magnitude * math.Sin(rad))
}

// Add returns the vector sum of v and o. The result keeps v's origin.
func (v Vector) Add(o Vector) Vector {
	ax, ay := v.Components()
	bx, by := o.Components()
	return FromComponents(ax+bx, ay+by, v.Origin)
}

// Translate moves the origin by the components of d.
func (v Vector) Translate(d Vector) Vector {
	dx, dy := d.Components()
	v.Origin = Point{X: v.Origin.X + dx, Y: v.Origin.Y + dy}
	return v
}

// TranslateAbs places the origin at p.
func (v Vector) TranslateAbs(p Point) Vector {
	v.Origin = p
	return v
}

// WithMagnitude returns a copy with the given magnitude and unchanged angle.
func (v Vector) WithMagnitude(m float64) Vector {
	return NewVector(m, v.Angle, v.Origin)
}

// PointsUp reports whether the vector has a strictly upward component.
func (v Vector) PointsUp() bool {
	_, dy := v.Components()
	return dy < 0
}

// NormalizeAngle maps any angle in degrees into [0, 360).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

func snap(c float64) float64 {
	if math.Abs(c) < componentEpsilon {
		return 0
	}
	return c
}
