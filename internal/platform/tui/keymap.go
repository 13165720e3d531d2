package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/superhex/internal/core"
)

// DefaultHold is how long a key counts as held after its last press or
// repeat when the config does not say otherwise.
const DefaultHold = 120 * time.Millisecond

// KeyMap binds terminal keys to the game's buttons.
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "rotate left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "rotate right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Select, k.Back, k.Quit},
	}
}

// Button translates a key message to the button it is bound to.
func (k KeyMap) Button(msg tea.KeyMsg) (core.Button, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.ButtonLeft, true
	case key.Matches(msg, k.Right):
		return core.ButtonRight, true
	case key.Matches(msg, k.Select):
		return core.ButtonSelect, true
	case key.Matches(msg, k.Back):
		return core.ButtonBack, true
	case key.Matches(msg, k.Quit):
		return core.ButtonQuit, true
	}
	return 0, false
}

// holdTracker turns the press and auto-repeat events a terminal delivers into
// held buttons. A button stays held until hold has passed without a repeat.
type holdTracker struct {
	hold time.Duration
	seen map[core.Button]time.Time
}

func newHoldTracker(hold time.Duration) *holdTracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &holdTracker{hold: hold, seen: make(map[core.Button]time.Time)}
}

// Press records that b was reported at now.
func (h *holdTracker) Press(b core.Button, now time.Time) {
	h.seen[b] = now
}

// Held returns the buttons still held at now.
func (h *holdTracker) Held(now time.Time) core.Buttons {
	var held core.Buttons
	for b, at := range h.seen {
		if now.Sub(at) <= h.hold {
			held = held.With(b)
			continue
		}
		delete(h.seen, b)
	}
	return held
}
