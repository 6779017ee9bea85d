package flappy

// Tracker awards one point per gate, the first time the flyer reaches it.
type Tracker struct {
	score int
}

// Update marks newly reached gates as passed and returns the points gained.
// A gate counts as reached once flyerX is at or beyond its screen x.
func (t *Tracker) Update(flyerX float64, placements []Placement, gates []Gate) int {
	gained := 0
	for _, p := range placements {
		g := &gates[p.Index]
		if g.Passed || flyerX < float64(p.X) {
			continue
		}
		g.Passed = true
		gained++
	}
	t.score += gained
	return gained
}

// Score returns the current score.
func (t *Tracker) Score() int {
	return t.score
}

// Reset zeroes the score.
func (t *Tracker) Reset() {
	t.score = 0
}
