package state

import (
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/render"
	"github.com/vovakirdan/superhex/internal/sim"
)

const (
	explosionSpeed = 3.0  // Wall offset growth per tick
	blinkFrames    = 30.0 // Ticks per half blink of the prompt
)

// GameOver shows the final time while the walls fly apart.
type GameOver struct {
	g    *Game
	lvl  *level.Level
	live *sim.LiveLevel

	score     int
	best      int
	newRecord bool
	offset    float64
	frames    float64
}

// NewGameOver takes over a finished LiveLevel.
func NewGameOver(g *Game, lvl *level.Level, live *sim.LiveLevel) *GameOver {
	return &GameOver{g: g, lvl: lvl, live: live, score: live.Score()}
}

// Score returns the final time in ticks.
func (o *GameOver) Score() int { return o.score }

// Best returns the best time including this run.
func (o *GameOver) Best() int { return o.best }

// NewRecord reports whether this run beat the stored best.
func (o *GameOver) NewRecord() bool { return o.newRecord }

// Offset returns the explosion offset.
func (o *GameOver) Offset() float64 { return o.offset }

func (o *GameOver) Enter() {
	o.best = o.g.bestTime(o.lvl.ID)
	if o.score > o.best {
		o.best = o.score
		o.newRecord = true
	}
}

// Exit records the run. The store keeps the best time per level.
func (o *GameOver) Exit() {
	o.g.saveTime(o.lvl.ID, o.score)
}

func (o *GameOver) Update(in core.Input, dilation float64) State {
	o.offset += explosionSpeed * dilation
	o.frames += dilation

	switch {
	case in.Pressed.Has(core.ButtonQuit), in.Pressed.Has(core.ButtonBack):
		return nil
	case in.Pressed.Has(core.ButtonSelect):
		return NewMenu(o.g)
	}
	return o
}

func (o *GameOver) DrawTop() {
	scene := render.SceneFor(o.live, o.offset)
	scene.NoCursor = true
	o.g.renderer.Play(o.g.draw, scene)

	dim := o.g.draw.ScreenDim()
	large := o.g.font.LineHeight(core.FontLarge)
	o.g.panel(0, 0, dim.X, 2)
	o.g.text(core.ColorWhite, dim.X/2, 1, alignCenter, core.FontLarge, "GAME OVER")
	if int(o.frames/blinkFrames)%2 == 0 {
		o.g.text(core.ColorGrey, dim.X/2, dim.Y-large, alignCenter, core.FontSmall, "PRESS SELECT")
	}
}

func (o *GameOver) DrawBot() {
	dim := o.g.draw.ScreenDim()
	small := o.g.font.LineHeight(core.FontSmall)

	lines := 2
	if o.newRecord {
		lines++
	}
	y := dim.Y/2 - small*lines/2
	o.g.panel(0, y-1, dim.X, lines)
	o.g.text(core.ColorWhite, dim.X/2, y, alignCenter, core.FontSmall,
		"TIME: "+sim.FormatTime(o.score)+" "+sim.RankFor(o.score).Name)
	o.g.text(core.ColorGrey, dim.X/2, y+small, alignCenter, core.FontSmall, "BEST: "+sim.FormatTime(o.best))
	if o.newRecord {
		o.g.text(core.RGB(0xFF, 0xD7, 0x00), dim.X/2, y+2*small, alignCenter, core.FontSmall, "NEW RECORD!")
	}
	o.g.drawFPS()
}
