package flappy

import (
	"math/rand"
)

// Gate cadence is fixed; there is no difficulty scaling.
const (
	GateCount     = 10  // Gates per session
	SpawnInterval = 600 // Scroll distance between consecutive gates (px)

	minGapTenths = 2 // Inclusive
	maxGapTenths = 8 // Exclusive
)

// Gate is a paired top/bottom obstacle.
type Gate struct {
	// SpawnTick is the scroll threshold at which the gate enters the screen.
	// It is compared against elapsed ticks times horizontal speed.
	SpawnTick int
	// GapFraction places the gap within the obstacle band, in [0.2, 0.8).
	GapFraction float64
	// Passed flips to true once, when the flyer first reaches the gate.
	Passed bool
}

// Generator produces the gate sequence for a session.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with the given RNG seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns a fresh, spawn-ordered batch of GateCount gates.
func (g *Generator) Generate() []Gate {
	gates := make([]Gate, GateCount)
	for i := range gates {
		tenths := minGapTenths + g.rng.Intn(maxGapTenths-minGapTenths)
		gates[i] = Gate{
			SpawnTick:   SpawnInterval * (i + 1),
			GapFraction: float64(tenths) / 10.0,
		}
	}
	return gates
}
