package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// helpRows is reserved below the screen buffer for the key help line.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// ScoreSaver records finished runs. Satisfied by *storage.Store.
type ScoreSaver interface {
	SaveRun(ctx context.Context, score, ticks int, seed int64) (int64, error)
	BestScore(ctx context.Context) (int, error)
}

// Options configure a play session.
type Options struct {
	Driver *flappy.Driver
	Store  ScoreSaver // Nil disables score saving
	Seed   int64
	Audio  bool // Shown in the HUD
	Logger *log.Logger
	Width  int
	Height int
}

// Model is the Bubble Tea model that hosts a running driver.
// The driver ticks on its own goroutine; the model only forwards input and
// redraws whenever a frame is published.
type Model struct {
	driver *flappy.Driver
	scene  *Scene
	screen *core.Screen
	store  ScoreSaver
	logger *log.Logger
	keys   KeyMap
	help   help.Model

	seed     int64
	audio    bool
	best     int
	snap     flappy.Snapshot
	saved    bool // Current run already recorded
	quitting bool
}

// NewModel creates a model for the given driver.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		driver: opts.Driver,
		scene:  NewScene(opts.Driver.Layout(), opts.Driver.Geometry()),
		screen: core.NewScreen(max(1, opts.Width), max(1, opts.Height-helpRows)),
		store:  opts.Store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		seed:   opts.Seed,
		audio:  opts.Audio,
		snap:   opts.Driver.Snapshot(),
	}
	m.help.Width = opts.Width

	if m.store != nil {
		best, err := m.store.BestScore(context.Background())
		if err != nil {
			m.logger.Warn("cannot load best score", "error", err)
		}
		m.best = best
	}
	return m
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitFrame(m.driver)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.send(m.keys.MapKey(msg))
		return m, nil

	case tea.MouseMsg:
		m.send(MapMouse(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(max(1, msg.Width), max(1, msg.Height-helpRows))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.snap = m.driver.Snapshot()
		m.recordRun()
		return m, waitFrame(m.driver)

	case ExitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) send(a core.Action) {
	if a == core.ActionNone {
		return
	}
	m.driver.Send(a)
}

// recordRun saves the score once per finished run.
func (m *Model) recordRun() {
	if m.snap.State != flappy.StateTerminal {
		m.saved = false
		return
	}
	if m.saved {
		return
	}
	m.saved = true
	m.best = max(m.best, m.snap.Score)

	m.logger.Info("run finished", "score", m.snap.Score, "ticks", m.snap.Elapsed, "seed", m.seed)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(context.Background(), m.snap.Score, m.snap.Elapsed, m.seed); err != nil {
		m.logger.Error("cannot save run", "error", err)
	}
}

// View renders the latest snapshot.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Draw(m.screen, m.snap, HUD{Best: m.best, Audio: m.audio})
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run hosts the driver in the terminal until the player quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- opts.Driver.Run(ctx) }()

	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()

	cancel()
	if derr := <-done; derr != nil && err == nil {
		err = derr
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
