package state

import (
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/render"
	"github.com/vovakirdan/superhex/internal/sim"
)

// Play runs one attempt at a level.
type Play struct {
	g    *Game
	lvl  *level.Level
	live *sim.LiveLevel
}

// NewPlay creates a Play state around a freshly built LiveLevel.
func NewPlay(g *Game, lvl *level.Level, live *sim.LiveLevel) *Play {
	return &Play{g: g, lvl: lvl, live: live}
}

// Live returns the running simulation.
func (p *Play) Live() *sim.LiveLevel { return p.live }

func (p *Play) Enter() {
	p.g.audio.PlaySFX(core.SoundBegin)
	p.g.audio.PlayBGM(core.SoundPlayBGM)
}

func (p *Play) Exit() {
	p.g.audio.StopBGM()
}

func (p *Play) Update(in core.Input, dilation float64) State {
	if in.Pressed.Has(core.ButtonQuit) {
		return nil
	}
	if in.Pressed.Has(core.ButtonBack) {
		p.g.log.Info("run abandoned", "level", p.lvl.ID, "time", sim.FormatTime(p.live.Score()))
		return NewMenu(p.g)
	}

	ev := p.live.Advance(in, dilation)
	if ev.Has(sim.EventRankUp) {
		if p.live.Rank().Name == sim.Ranks[len(sim.Ranks)-1].Name {
			p.g.audio.PlaySFX(core.SoundHexagon)
		} else {
			p.g.audio.PlaySFX(core.SoundLevelUp)
		}
	}
	if ev.Has(sim.EventCollision) {
		p.g.audio.PlaySFX(core.SoundOver)
		p.g.log.Info("collision", "level", p.lvl.ID, "time", sim.FormatTime(p.live.Score()), "tick", p.live.HitTick())
		return NewGameOver(p.g, p.lvl, p.live)
	}
	return p
}

func (p *Play) DrawTop() {
	p.g.renderer.Play(p.g.draw, render.SceneFor(p.live, 0))
}

func (p *Play) DrawBot() {
	dim := p.g.draw.ScreenDim()
	small := p.g.font.LineHeight(core.FontSmall)
	clock := "TIME: " + sim.FormatTime(p.live.Score())
	w := p.g.font.TextWidth(clock, core.FontSmall) + 4

	p.g.panel(dim.X-w, 0, w, 2)
	p.g.text(core.ColorWhite, dim.X-2, 1, alignRight, core.FontSmall, clock)
	p.g.text(core.ColorGrey, dim.X-2, 1+small, alignRight, core.FontSmall, p.live.Rank().Name)
	p.g.drawFPS()
}
