package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/superhex/internal/app"
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/state"
)

// maxDilation caps the ticks a single frame may advance after a stall, so a
// suspended terminal does not kill the player on resume.
const maxDilation = 4

// Options configure a Model.
type Options struct {
	Cols, Rows int           // Initial terminal size in cells
	MaxCols    int           // Upper bound on the rendered width, 0 for none
	MaxRows    int           // Upper bound on the rendered height, 0 for none
	TickRate   int           // Frames per second
	Hold       time.Duration // Key hold window
	Renderer   *lipgloss.Renderer
}

// OptionsFor derives terminal options from the app config.
func OptionsFor(a *app.App, cols, rows int) Options {
	return Options{
		Cols:     cols,
		Rows:     rows,
		MaxCols:  a.Config.Terminal.MaxCols,
		MaxRows:  a.Config.Terminal.MaxRows,
		TickRate: a.TickRate(),
		Hold:     time.Duration(a.Config.Terminal.HoldMillis) * time.Millisecond,
	}
}

// Model is the Bubble Tea model that drives one Game.
type Model struct {
	game    *state.Game
	screen  *core.Screen
	painter *Painter
	keys    KeyMap
	hold    *holdTracker
	opts    Options

	lastTick time.Time
	quitting bool
}

// NewModel creates a Model whose Game draws into a fresh Screen. newGame is
// called with that Screen as Drawer and a cell Font.
func NewModel(opts Options, newGame func(d core.Drawer, f core.Font) (*state.Game, error)) (Model, error) {
	screen := core.NewScreen(0, 0)
	m := Model{
		screen:  screen,
		painter: NewPainter(opts.Renderer),
		keys:    DefaultKeyMap(),
		hold:    newHoldTracker(opts.Hold),
		opts:    opts,
	}
	m.resize(opts.Cols, opts.Rows)

	game, err := newGame(screen, NewCellFont(screen))
	if err != nil {
		return Model{}, err
	}
	m.game = game
	return m, nil
}

// Game returns the driven game.
func (m Model) Game() *state.Game {
	return m.game
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if b, ok := m.keys.Button(msg); ok {
			m.hold.Press(b, time.Now())
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// resize keeps the play field inside the configured bounds.
func (m *Model) resize(cols, rows int) {
	if m.opts.MaxCols > 0 {
		cols = core.Min(cols, m.opts.MaxCols)
	}
	if m.opts.MaxRows > 0 {
		rows = core.Min(rows, m.opts.MaxRows)
	}
	m.screen.Resize(cols, rows)
}

// handleTick advances the game by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dilation := 1.0
	if !m.lastTick.IsZero() {
		dilation = core.ClampF(core.Dilation(now.Sub(m.lastTick).Seconds()), 0, maxDilation)
	}
	m.lastTick = now

	if !m.game.Step(m.hold.Held(now), dilation) {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}
	return m, tickCmd(m.opts.TickRate)
}

// View renders the game.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Draw()
	return m.painter.Render(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	m.game.Close()
	return err
}
