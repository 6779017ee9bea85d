package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

type savedRun struct {
	score, ticks int
	seed         int64
}

type fakeSaver struct {
	best    int
	bestErr error
	saveErr error
	runs    []savedRun
}

func (f *fakeSaver) SaveRun(_ context.Context, score, ticks int, seed int64) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.runs = append(f.runs, savedRun{score, ticks, seed})
	return int64(len(f.runs)), nil
}

func (f *fakeSaver) BestScore(context.Context) (int, error) {
	return f.best, f.bestErr
}

func newTestModel(t *testing.T, store ScoreSaver) (Model, *flappy.Driver) {
	t.Helper()
	logger := log.New(io.Discard)
	engine := flappy.New(config.DefaultFlappyConfig(), 1)
	d := flappy.NewDriver(engine, time.Millisecond, logger)
	m := NewModel(Options{
		Driver: d,
		Store:  store,
		Seed:   1,
		Logger: logger,
		Width:  80,
		Height: 25,
	})
	return m, d
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

// crash flaps once and ticks until the flyer lands.
func crash(t *testing.T, d *flappy.Driver) {
	t.Helper()
	d.Send(core.ActionFlap)
	for i := 0; i < 1000; i++ {
		if d.Tick().To == flappy.StateTerminal {
			return
		}
	}
	t.Fatal("flyer never reached the ground")
}

func TestModelForwardsKeys(t *testing.T) {
	m, d := newTestModel(t, nil)

	update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	d.Tick()

	if got := d.Snapshot().State; got != flappy.StatePlaying {
		t.Errorf("state = %v, want playing", got)
	}
}

func TestModelForwardsClicks(t *testing.T) {
	m, d := newTestModel(t, nil)

	update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	d.Tick()

	if got := d.Snapshot().State; got != flappy.StatePlaying {
		t.Errorf("state = %v, want playing", got)
	}
}

func TestModelHelpToggleSendsNothing(t *testing.T) {
	m, d := newTestModel(t, nil)

	m, _ = update(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Error("help not expanded")
	}
	d.Tick()
	if got := d.Snapshot().State; got != flappy.StateWaiting {
		t.Errorf("state = %v, want waiting", got)
	}
}

func TestModelFrameUpdatesSnapshot(t *testing.T) {
	m, d := newTestModel(t, nil)

	d.Send(core.ActionFlap)
	d.Tick()
	m, cmd := update(t, m, FrameMsg{})

	if m.snap.State != flappy.StatePlaying {
		t.Errorf("snapshot state = %v, want playing", m.snap.State)
	}
	if cmd == nil {
		t.Error("model stopped waiting for frames")
	}
}

func TestModelRecordsEachRunOnce(t *testing.T) {
	store := &fakeSaver{}
	m, d := newTestModel(t, store)

	crash(t, d)
	m, _ = update(t, m, FrameMsg{})
	m, _ = update(t, m, FrameMsg{})

	if len(store.runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(store.runs))
	}
	want := savedRun{score: 0, ticks: d.Snapshot().Elapsed, seed: 1}
	if store.runs[0] != want {
		t.Errorf("saved %+v, want %+v", store.runs[0], want)
	}

	d.Send(core.ActionRestart)
	d.Tick()
	m, _ = update(t, m, FrameMsg{})
	crash(t, d)
	update(t, m, FrameMsg{})

	if len(store.runs) != 2 {
		t.Errorf("saved %d runs after restart, want 2", len(store.runs))
	}
}

func TestModelSurvivesStoreErrors(t *testing.T) {
	store := &fakeSaver{bestErr: errors.New("locked"), saveErr: errors.New("disk full")}
	m, d := newTestModel(t, store)

	if m.best != 0 {
		t.Errorf("best = %d, want 0", m.best)
	}
	crash(t, d)
	m, _ = update(t, m, FrameMsg{})
	if !m.saved {
		t.Error("failed save retried on every frame")
	}
}

func TestModelLoadsBest(t *testing.T) {
	m, _ := newTestModel(t, &fakeSaver{best: 7})

	if !strings.Contains(m.View(), "Best 7") {
		t.Error("view missing stored best score")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.screen.Width() != 100 || m.screen.Height() != 30-helpRows {
		t.Errorf("screen = %dx%d, want 100x%d", m.screen.Width(), m.screen.Height(), 30-helpRows)
	}
}

func TestModelExit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := update(t, m, ExitMsg{})

	if cmd == nil {
		t.Fatal("no quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command is not tea.Quit")
	}
	if m.View() != "" {
		t.Error("view not cleared on exit")
	}
}

func TestWaitFrame(t *testing.T) {
	_, d := newTestModel(t, nil)

	d.Tick()
	if _, ok := waitFrame(d)().(FrameMsg); !ok {
		t.Error("tick did not produce a frame message")
	}

	d.Send(core.ActionQuit)
	d.Tick()
	if _, ok := waitFrame(d)().(ExitMsg); !ok {
		t.Error("quit did not produce an exit message")
	}
}
