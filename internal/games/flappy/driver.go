package flappy

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// inputBuffer bounds queued actions between ticks; extra input is dropped.
const inputBuffer = 16

// Driver runs an Engine on a fixed interval in its own goroutine.
//
// Input arrives through Send and is applied at the start of the next tick.
// After each tick the driver publishes a Snapshot and signals Frames without
// waiting for the renderer. The renderer, in turn, publishes gate rectangles
// into Geometry for the following tick's collision check.
type Driver struct {
	engine   *Engine
	interval time.Duration
	logger   *log.Logger

	inputs   chan core.Action
	frames   chan struct{}
	snapshot atomic.Pointer[Snapshot]
	frame    core.InputFrame

	exit     chan struct{}
	exitOnce sync.Once
}

// NewDriver wraps engine. A zero interval falls back to the default tick.
func NewDriver(engine *Engine, interval time.Duration, logger *log.Logger) *Driver {
	if interval <= 0 {
		interval = core.DefaultTickInterval
	}
	d := &Driver{
		engine:   engine,
		interval: interval,
		logger:   logger,
		inputs:   make(chan core.Action, inputBuffer),
		frames:   make(chan struct{}, 1),
		frame:    core.NewInputFrame(),
		exit:     make(chan struct{}),
	}
	d.publish()
	return d
}

// Send queues an action for the next tick. It never blocks; it reports
// false if the queue is full and the action was dropped.
func (d *Driver) Send(a core.Action) bool {
	select {
	case d.inputs <- a:
		return true
	default:
		d.logger.Debug("input dropped", "action", a)
		return false
	}
}

// Frames delivers a signal after every tick. Signals coalesce if the
// renderer falls behind.
func (d *Driver) Frames() <-chan struct{} {
	return d.frames
}

// Exit is closed once a Quit action has been processed.
func (d *Driver) Exit() <-chan struct{} {
	return d.exit
}

// Snapshot returns the most recently published frame.
func (d *Driver) Snapshot() Snapshot {
	return *d.snapshot.Load()
}

// Geometry returns the bag the renderer publishes gate rectangles into.
func (d *Driver) Geometry() *GeometryBag {
	return d.engine.Geometry()
}

// Layout returns the placement function for rendering.
func (d *Driver) Layout() Layout {
	return d.engine.Layout()
}

// Run ticks until ctx is done. It is the only goroutine that touches the
// engine while running.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Debug("tick loop started", "interval", d.interval)
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("tick loop stopped")
			return nil
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Tick drains queued input and advances the engine once. Run calls it on
// every interval; tests call it directly.
func (d *Driver) Tick() StepResult {
	d.frame.Clear()
	for drained := false; !drained; {
		select {
		case a := <-d.inputs:
			d.frame.Set(a)
		default:
			drained = true
		}
	}

	res := d.engine.Step(d.frame)
	if res.From != res.To {
		d.logger.Debug("state changed", "from", res.From, "to", res.To, "score", d.engine.Score())
	}
	if res.Collision != CollisionNone {
		d.logger.Debug("collision", "kind", res.Collision, "tick", d.engine.tick)
	}
	if res.Quit {
		d.exitOnce.Do(func() { close(d.exit) })
	}

	d.publish()
	select {
	case d.frames <- struct{}{}:
	default:
	}
	return res
}

func (d *Driver) publish() {
	snap := d.engine.Snapshot()
	d.snapshot.Store(&snap)
}
