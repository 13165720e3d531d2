package state

import (
	"fmt"

	"github.com/vovakirdan/superhex/internal/core"
)

// align positions text horizontally relative to x.
type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// text draws one line of text aligned around x.
func (g *Game) text(c core.Color, x, y int, a align, size core.FontSize, s string) {
	w := g.font.TextWidth(s, size)
	switch a {
	case alignCenter:
		x -= w / 2
	case alignRight:
		x -= w
	}
	g.font.DrawText(c, core.Pt(x, y), s, size)
}

// panel draws a translucent box sized to hold lines of small text.
func (g *Game) panel(x, y, w, lines int) int {
	h := g.font.LineHeight(core.FontSmall)*lines + 2
	g.renderer.Box(g.draw, core.ColorOverlay, core.Pt(x, y), core.Pt(w, h))
	return h
}

// drawFPS draws the measured frame rate in the bottom-left corner.
func (g *Game) drawFPS() {
	dim := g.draw.ScreenDim()
	lh := g.font.LineHeight(core.FontSmall)
	g.text(core.ColorGrey, 1, dim.Y-lh, alignLeft, core.FontSmall, fmt.Sprintf("FPS: %.0f", g.fps))
}
