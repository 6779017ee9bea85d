package flappy

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestDriver(interval time.Duration) *Driver {
	e := New(config.DefaultFlappyConfig(), 1)
	return NewDriver(e, interval, log.New(io.Discard))
}

func TestDriverPublishesInitialSnapshot(t *testing.T) {
	d := newTestDriver(time.Millisecond)

	s := d.Snapshot()
	if s.State != StateWaiting || s.Tick != 0 {
		t.Errorf("initial snapshot = %v at tick %d, want waiting at 0", s.State, s.Tick)
	}
}

func TestDriverAppliesInputOnNextTick(t *testing.T) {
	d := newTestDriver(time.Millisecond)

	if !d.Send(core.ActionFlap) {
		t.Fatal("send rejected")
	}
	if d.Snapshot().State != StateWaiting {
		t.Fatal("input applied before the tick")
	}

	res := d.Tick()
	if res.To != StatePlaying {
		t.Errorf("state = %v, want playing", res.To)
	}
	if s := d.Snapshot(); s.State != StatePlaying || s.Tick != 1 {
		t.Errorf("snapshot = %v at tick %d, want playing at 1", s.State, s.Tick)
	}

	// A replayed flap would relaunch and leave 6 instead of 4.
	d.Tick()
	if acc := d.engine.Motion().Acceleration(); acc.Magnitude != 4 {
		t.Errorf("acceleration after second tick = %v, want 4", acc.Magnitude)
	}
}

func TestDriverSendNeverBlocks(t *testing.T) {
	d := newTestDriver(time.Millisecond)

	for i := 0; i < inputBuffer; i++ {
		if !d.Send(core.ActionFlap) {
			t.Fatalf("send %d rejected below capacity", i)
		}
	}
	if d.Send(core.ActionFlap) {
		t.Error("send beyond capacity accepted")
	}

	d.Tick()
	if !d.Send(core.ActionFlap) {
		t.Error("queue not drained by tick")
	}
}

func TestDriverFramesCoalesce(t *testing.T) {
	d := newTestDriver(time.Millisecond)

	d.Tick()
	d.Tick()
	d.Tick()

	select {
	case <-d.Frames():
	default:
		t.Fatal("no frame signal after ticks")
	}
	select {
	case <-d.Frames():
		t.Error("unread frame signals piled up")
	default:
	}
}

func TestDriverExitOnQuit(t *testing.T) {
	d := newTestDriver(time.Millisecond)

	select {
	case <-d.Exit():
		t.Fatal("exit closed before quit")
	default:
	}

	d.Send(core.ActionQuit)
	d.Tick()
	d.Send(core.ActionQuit)
	d.Tick()

	select {
	case <-d.Exit():
	default:
		t.Error("exit not closed after quit")
	}
}

func TestDriverRun(t *testing.T) {
	d := newTestDriver(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.Send(core.ActionFlap)
	deadline := time.After(2 * time.Second)
	for d.Snapshot().State != StatePlaying {
		select {
		case <-d.Frames():
		case <-deadline:
			t.Fatal("driver never applied the flap")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestDriverDefaultInterval(t *testing.T) {
	d := newTestDriver(0)
	if d.interval != core.DefaultTickInterval {
		t.Errorf("interval = %v, want %v", d.interval, core.DefaultTickInterval)
	}
}
