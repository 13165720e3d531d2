package state

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/render"
	"github.com/vovakirdan/superhex/internal/sim"
)

// menuSpin is the idle rotation of the menu background in radians per tick.
const menuSpin = 0.01

// Menu is the level selector.
type Menu struct {
	g *Game

	level     int
	lastLevel int
	frame     float64 // Elapsed transition ticks
	direction int     // +1 right, -1 left, 0 settled
	spin      float64

	best       int
	diagnostic string
}

// NewMenu creates the selector positioned on the game's selected level.
func NewMenu(g *Game) *Menu {
	m := &Menu{g: g}
	m.reset()
	return m
}

func (m *Menu) reset() {
	m.level = m.g.selected
	m.lastLevel = m.level
	m.frame = 0
	m.direction = 0
	m.best = m.g.bestTime(m.current().ID)
}

func (m *Menu) current() *level.Level {
	return &m.g.levels[m.level]
}

// Selected returns the index of the highlighted level.
func (m *Menu) Selected() int { return m.level }

// Transitioning reports the direction of a running transition, 0 when idle.
func (m *Menu) Transitioning() int { return m.direction }

// Progress returns how far the running transition is, in [0, 1].
func (m *Menu) Progress() float64 {
	if m.direction == 0 {
		return 1
	}
	return core.ClampF(m.frame/m.g.transitionFrames, 0, 1)
}

// Diagnostic returns the last level error shown to the player.
func (m *Menu) Diagnostic() string { return m.diagnostic }

func (m *Menu) Enter() {
	m.best = m.g.bestTime(m.current().ID)
	m.g.audio.PlayBGM(core.SoundMenuBGM)
}

func (m *Menu) Exit() {
	m.g.audio.StopBGM()
}

func (m *Menu) Update(in core.Input, dilation float64) State {
	if in.Pressed.Has(core.ButtonQuit) || in.Pressed.Has(core.ButtonBack) {
		return nil
	}
	m.spin = core.AngleWrap(m.spin + menuSpin*dilation)

	dir := 0
	if in.Held.Has(core.ButtonRight) {
		dir++
	}
	if in.Held.Has(core.ButtonLeft) {
		dir--
	}

	if m.direction != 0 {
		if dir == -m.direction {
			// Head back to the level we came from, keeping the animation
			// position so it does not jump.
			m.level, m.lastLevel = m.lastLevel, m.level
			m.direction = -m.direction
			m.frame = m.g.transitionFrames - m.frame
		}
		m.frame += dilation
		if m.frame >= m.g.transitionFrames {
			m.settle()
		}
		return m
	}

	if dir != 0 {
		n := len(m.g.levels)
		m.lastLevel = m.level
		m.level = ((m.level+dir)%n + n) % n
		m.direction = dir
		m.frame = 0
		m.diagnostic = ""
		m.g.audio.PlaySFX(core.SoundSelect)
		return m
	}

	if in.Pressed.Has(core.ButtonSelect) {
		return m.start()
	}
	return m
}

// settle ends a transition on the current level.
func (m *Menu) settle() {
	m.direction = 0
	m.frame = 0
	m.lastLevel = m.level
	m.g.selected = m.level
	m.best = m.g.bestTime(m.current().ID)
}

// start builds a Play state for the selected level, staying on the menu with
// a diagnostic when the level cannot be played.
func (m *Menu) start() State {
	lvl := m.current()
	live, err := sim.New(lvl, m.g.newRand(), m.g.opts)
	if err != nil {
		m.g.log.Error("cannot start level", "level", lvl.ID, "err", err)
		m.diagnostic = diagnosticFor(err)
		return m
	}
	m.g.selected = m.level
	m.g.log.Info("starting level", "level", lvl.ID, "source", lvl.Source)
	return NewPlay(m.g, lvl, live)
}

func diagnosticFor(err error) string {
	var verr level.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("%s: %s", verr.Code, verr.Message)
	}
	return err.Error()
}

func (m *Menu) DrawTop() {
	view := render.MenuView{
		Current:   m.current(),
		Progress:  m.Progress(),
		Spin:      m.spin,
		Direction: m.direction,
		Metrics:   m.g.opts.Metrics,
	}
	if m.direction != 0 {
		view.Previous = &m.g.levels[m.lastLevel]
	}
	m.g.renderer.Menu(m.g.draw, view)

	dim := m.g.draw.ScreenDim()
	lvl := m.current()
	small := m.g.font.LineHeight(core.FontSmall)
	large := m.g.font.LineHeight(core.FontLarge)

	y := m.g.panel(0, 0, dim.X, 4) + 1
	m.g.text(core.ColorWhite, 2, 1, alignLeft, core.FontLarge, lvl.Name)
	m.g.text(core.ColorGrey, 2, 1+large, alignLeft, core.FontSmall, "DIFFICULTY: "+lvl.Difficulty)
	m.g.text(core.ColorGrey, 2, 1+large+small, alignLeft, core.FontSmall, "MODE: "+lvl.Mode)
	m.g.text(core.ColorGrey, dim.X-2, 1+large+small, alignRight, core.FontSmall, "CREATOR: "+lvl.Creator)

	if m.diagnostic != "" {
		m.g.text(core.RGB(0xFF, 0x40, 0x40), dim.X/2, y+small, alignCenter, core.FontSmall, m.diagnostic)
	}
}

func (m *Menu) DrawBot() {
	dim := m.g.draw.ScreenDim()
	small := m.g.font.LineHeight(core.FontSmall)

	best := "BEST: " + sim.FormatTime(m.best)
	if m.best > 0 {
		best += " " + sim.RankFor(m.best).Name
	}
	m.g.text(core.ColorWhite, dim.X-2, dim.Y-2*small, alignRight, core.FontSmall, best)
	m.g.text(core.ColorGrey, dim.X-2, dim.Y-small, alignRight, core.FontSmall, "SELECT: PLAY  BACK: QUIT")
	m.g.drawFPS()
}
