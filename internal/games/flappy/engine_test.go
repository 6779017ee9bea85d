package flappy

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// soundRecorder captures every cue the engine emits.
type soundRecorder struct {
	played []core.Sound
}

func (r *soundRecorder) Play(s core.Sound) {
	r.played = append(r.played, s)
}

func (r *soundRecorder) count(s core.Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

func newTestEngine(mode config.GeometryMode, seed int64) (*Engine, *soundRecorder) {
	cfg := config.DefaultFlappyConfig()
	cfg.Collision.Geometry = mode
	e := New(cfg, seed)
	rec := &soundRecorder{}
	e.SetSound(rec)
	return e, rec
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// runUntil steps with no input until the engine reaches want or limit ticks pass.
func runUntil(t *testing.T, e *Engine, want State, limit int) StepResult {
	t.Helper()
	var res StepResult
	for i := 0; i < limit; i++ {
		res = e.Step(core.NewInputFrame())
		if e.State() == want {
			return res
		}
	}
	t.Fatalf("state %v not reached within %d ticks (now %v)", want, limit, e.State())
	return res
}

func TestEngineStartsWaiting(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)

	if e.State() != StateWaiting {
		t.Errorf("state = %v, want waiting", e.State())
	}
	if e.Gates() != nil {
		t.Error("gates exist before the first flap")
	}
	if got := e.Motion().Position(); got.X != 320 || got.Y != 270 {
		t.Errorf("start = %+v, want (320, 270)", got)
	}
}

func TestEngineFirstFlap(t *testing.T) {
	e, rec := newTestEngine(config.GeometryTick, 1)

	e.Flap()

	if e.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", e.State())
	}
	acc := e.Motion().Acceleration()
	if acc.Magnitude != 8 || acc.Angle != core.AngleUp {
		t.Errorf("acceleration = (%v, %v°), want (8, 270°)", acc.Magnitude, acc.Angle)
	}
	if e.Motion().Velocity().Magnitude != 0 {
		t.Errorf("velocity = %v, want 0", e.Motion().Velocity().Magnitude)
	}

	gates := e.Gates()
	if len(gates) != GateCount {
		t.Fatalf("gates = %d, want %d", len(gates), GateCount)
	}
	for i, g := range gates {
		if g.SpawnTick != 600*(i+1) {
			t.Errorf("gate %d spawns at %d, want %d", i, g.SpawnTick, 600*(i+1))
		}
	}
	if rec.count(core.SoundJump) != 1 {
		t.Errorf("jump cues = %d, want 1", rec.count(core.SoundJump))
	}
}

func TestEngineFirstFlapResetsScrollClock(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)
	for i := 0; i < 50; i++ {
		e.Step(core.NewInputFrame())
	}
	if e.Elapsed() != 50 {
		t.Fatalf("elapsed while waiting = %d, want 50", e.Elapsed())
	}

	e.Step(input(core.ActionFlap))

	if e.Elapsed() != 1 {
		t.Errorf("elapsed after first flap tick = %d, want 1", e.Elapsed())
	}
}

func TestEngineWaitingHoldsPosition(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)

	sawBob := false
	for i := 0; i < 100; i++ {
		e.Step(core.NewInputFrame())
		s := e.Snapshot()
		if s.Position.Y != 270 {
			t.Fatalf("tick %d: flyer moved to y=%v while waiting", i, s.Position.Y)
		}
		if math.Abs(s.Bob) > 10 {
			t.Fatalf("tick %d: bob %v exceeds amplitude", i, s.Bob)
		}
		if s.Bob != 0 {
			sawBob = true
		}
		if s.Tilt != 0 {
			t.Fatalf("tick %d: tilt %d while waiting", i, s.Tilt)
		}
	}
	if !sawBob {
		t.Error("flyer never bobbed")
	}
}

func TestEngineWingCycle(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)
	if w := e.Snapshot().Wing; w != 1 {
		t.Fatalf("initial wing = %d, want 1", w)
	}

	e.Step(core.NewInputFrame())
	if w := e.Snapshot().Wing; w != 2 {
		t.Errorf("wing after 1 tick = %d, want 2", w)
	}
	for i := 1; i < 10; i++ {
		e.Step(core.NewInputFrame())
	}
	if w := e.Snapshot().Wing; w != 0 {
		t.Errorf("wing after 10 ticks = %d, want 0", w)
	}
}

func TestEngineGroundIsTerminal(t *testing.T) {
	e, rec := newTestEngine(config.GeometryTick, 1)
	e.Step(input(core.ActionFlap))

	res := runUntil(t, e, StateTerminal, 500)

	if res.Collision != CollisionGround {
		t.Errorf("collision = %v, want ground", res.Collision)
	}
	if res.From != StatePlaying {
		t.Errorf("came from %v, want playing", res.From)
	}
	pinned := float64(500 - 24)
	if y := e.Motion().Position().Y; y != pinned {
		t.Errorf("y = %v, want pinned at %v", y, pinned)
	}

	elapsed := e.Elapsed()
	for i := 0; i < 50; i++ {
		res := e.Step(input(core.ActionFlap))
		if res.To != StateTerminal {
			t.Fatalf("left terminal to %v", res.To)
		}
		if y := e.Motion().Position().Y; y != pinned {
			t.Fatalf("y moved to %v after terminal", y)
		}
	}
	if e.Elapsed() != elapsed {
		t.Errorf("scroll clock advanced in terminal: %d -> %d", elapsed, e.Elapsed())
	}
	if e.Snapshot().Tilt != 90 {
		t.Errorf("tilt = %d, want 90 nose-down", e.Snapshot().Tilt)
	}

	if rec.count(core.SoundGround) != 1 {
		t.Errorf("ground cues = %d, want 1", rec.count(core.SoundGround))
	}
	if rec.count(core.SoundJump) != 1 {
		t.Errorf("jump cues = %d, want 1 (flaps after terminal ignored)", rec.count(core.SoundJump))
	}
	if rec.count(core.SoundCrash) != 0 {
		t.Errorf("crash cues = %d, want 0", rec.count(core.SoundCrash))
	}
}

func TestEnginePhaseAfterFlap(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)
	e.Step(input(core.ActionFlap))

	tests := []struct {
		tick int
		want Phase
	}{
		{1, PhaseRising},
		{4, PhaseRising},
		{5, PhaseGliding},
		{23, PhaseGliding},
		{24, PhaseFalling},
		{30, PhaseFalling},
	}

	tick := 1
	for _, tt := range tests {
		for ; tick < tt.tick; tick++ {
			e.Step(core.NewInputFrame())
		}
		if got := e.Phase(); got != tt.want {
			t.Errorf("tick %d: phase = %v, want %v", tt.tick, got, tt.want)
		}
	}
}

func TestEngineTiltWhileRising(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)
	e.Step(input(core.ActionFlap))

	want := []int{-10, -20, -30, -30}
	for i, w := range want {
		if i > 0 {
			e.Step(core.NewInputFrame())
		}
		if got := e.Snapshot().Tilt; got != w {
			t.Errorf("tick %d: tilt = %d, want %d", i+1, got, w)
		}
	}
}

func TestEngineCrashedKeepsFalling(t *testing.T) {
	e, rec := newTestEngine(config.GeometryRender, 1)
	e.Step(input(core.ActionFlap))

	// Geometry published after a frame is checked on the next tick.
	e.Geometry().Add(e.FlyerBounds())
	res := e.Step(core.NewInputFrame())
	if res.Collision != CollisionGate || res.To != StateCrashed {
		t.Fatalf("got %v -> %v, want gate collision into crashed", res.Collision, res.To)
	}
	if rec.count(core.SoundCrash) != 1 {
		t.Errorf("crash cues = %d, want 1", rec.count(core.SoundCrash))
	}

	elapsed := e.Elapsed()
	for i := 0; i < 10; i++ {
		e.Step(core.NewInputFrame())
	}
	if e.Elapsed() != elapsed {
		t.Errorf("scroll clock advanced while crashed: %d -> %d", elapsed, e.Elapsed())
	}

	before := e.Motion().Position().Y
	e.Step(input(core.ActionFlap))
	if e.Motion().Boosting() {
		t.Error("flap relaunched a crashed flyer")
	}
	if rec.count(core.SoundJump) != 1 {
		t.Errorf("jump cues = %d, want 1", rec.count(core.SoundJump))
	}
	if e.Motion().Position().Y == before {
		t.Error("crashed flyer stopped integrating")
	}

	e.Geometry().Add(e.FlyerBounds())
	res = e.Step(core.NewInputFrame())
	if res.Collision != CollisionGate || res.To != StateCrashed {
		t.Errorf("second hit: %v -> %v, want gate collision staying crashed", res.Collision, res.To)
	}
	if rec.count(core.SoundCrash) != 1 {
		t.Errorf("crash cues = %d after second hit, want 1", rec.count(core.SoundCrash))
	}

	res = runUntil(t, e, StateTerminal, 500)
	if res.From != StateCrashed || res.Collision != CollisionGround {
		t.Errorf("terminal via %v from %v, want ground from crashed", res.Collision, res.From)
	}
}

func TestEngineTickModeIgnoresPublishedGeometry(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)
	e.Step(input(core.ActionFlap))

	e.Geometry().Add(e.FlyerBounds())
	res := e.Step(core.NewInputFrame())

	if res.Collision != CollisionNone {
		t.Errorf("collision = %v, want none", res.Collision)
	}
	if e.Geometry().Len() != 0 {
		t.Errorf("bag holds %d rects, want drained", e.Geometry().Len())
	}
}

func TestEngineWaitingDrainsGeometry(t *testing.T) {
	e, _ := newTestEngine(config.GeometryRender, 1)
	e.Geometry().Add(core.NewRect(0, 0, 800, 500))

	res := e.Step(core.NewInputFrame())
	if res.Collision != CollisionNone || e.State() != StateWaiting {
		t.Fatalf("waiting tick produced %v in %v", res.Collision, e.State())
	}
	if e.Geometry().Len() != 0 {
		t.Error("stale geometry survived a waiting tick")
	}

	// A flap right after must not see the stale full-screen rect.
	res = e.Step(input(core.ActionFlap))
	if res.Collision != CollisionNone {
		t.Errorf("first playing tick collided with %v", res.Collision)
	}
}

func TestEngineScoresWhenReachingGate(t *testing.T) {
	// Render mode with nothing published: no gate ever collides.
	e, rec := newTestEngine(config.GeometryRender, 5)

	step := func(i int) StepResult {
		if i%30 == 0 {
			return e.Step(input(core.ActionFlap))
		}
		return e.Step(core.NewInputFrame())
	}

	for i := 0; i < 216; i++ {
		step(i)
	}
	if e.Score() != 0 {
		t.Fatalf("score = %d before reaching the first gate", e.Score())
	}

	res := step(216)
	if res.Gained != 1 || e.Score() != 1 {
		t.Errorf("gained %d, score %d; want 1, 1", res.Gained, e.Score())
	}
	if !e.Gates()[0].Passed {
		t.Error("first gate not marked passed")
	}

	for i := 217; i < 300; i++ {
		step(i)
	}
	if e.Score() != 1 {
		t.Errorf("score = %d, want 1 before the second gate", e.Score())
	}
	if rec.count(core.SoundScore) != 1 {
		t.Errorf("score cues = %d, want 1", rec.count(core.SoundScore))
	}
	if e.State() != StatePlaying {
		t.Errorf("state = %v, want playing", e.State())
	}
}

func TestEngineRestart(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)
	fresh := e.Snapshot()

	e.Restart()
	if e.Snapshot().Tick != fresh.Tick || e.State() != StateWaiting {
		t.Fatal("restart in waiting changed the engine")
	}

	e.Step(input(core.ActionFlap))
	e.Step(input(core.ActionRestart))
	if e.State() != StatePlaying {
		t.Fatalf("restart while playing moved to %v", e.State())
	}

	runUntil(t, e, StateTerminal, 500)
	e.Geometry().Add(core.NewRect(0, 0, 1, 1))

	e.Restart()
	got := e.Snapshot()
	got.Tick = fresh.Tick
	if !reflect.DeepEqual(got, fresh) {
		t.Errorf("state after restart differs from construction:\n got %+v\nwant %+v", got, fresh)
	}
	if e.Geometry().Len() != 0 {
		t.Error("geometry survived restart")
	}

	e.Restart()
	again := e.Snapshot()
	again.Tick = fresh.Tick
	if !reflect.DeepEqual(again, fresh) {
		t.Error("second restart changed state")
	}
}

func TestEngineRestartAppliesBeforeFlap(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)
	e.Step(input(core.ActionFlap))
	runUntil(t, e, StateTerminal, 500)

	e.Step(input(core.ActionRestart, core.ActionFlap))

	if e.State() != StatePlaying {
		t.Errorf("state = %v, want playing after restart+flap", e.State())
	}
	if e.Score() != 0 {
		t.Errorf("score = %d, want 0", e.Score())
	}
}

func TestEngineQuitIsReported(t *testing.T) {
	e, _ := newTestEngine(config.GeometryTick, 1)

	res := e.Step(input(core.ActionQuit))

	if !res.Quit {
		t.Error("quit not reported")
	}
	if res.To != StateWaiting {
		t.Errorf("quit changed state to %v", res.To)
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() []Snapshot {
		e, _ := newTestEngine(config.GeometryTick, 99)
		var out []Snapshot
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%25 == 0 {
				in.Set(core.ActionFlap)
			}
			if e.State() == StateTerminal {
				in.Set(core.ActionRestart)
			}
			e.Step(in)
			out = append(out, e.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("runs diverged at tick %d:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestEngineSeedChangesGates(t *testing.T) {
	a, _ := newTestEngine(config.GeometryTick, 1)
	b, _ := newTestEngine(config.GeometryTick, 2)
	a.Flap()
	b.Flap()

	if reflect.DeepEqual(a.Gates(), b.Gates()) {
		t.Error("different seeds produced identical gates")
	}
}

func TestEngineNilSoundIsSilent(t *testing.T) {
	e := New(config.DefaultFlappyConfig(), 1)
	e.SetSound(nil)
	e.Step(input(core.ActionFlap))
	runUntil(t, e, StateTerminal, 500)
}
