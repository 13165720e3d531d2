package desktop

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/superhex/internal/core"
)

// Font draws text with the built-in 7x13 bitmap face. The large size is the
// same face scaled by two.
type Font struct {
	w    *Window
	face text.Face
}

// NewFont creates a font drawing into w's current frame.
func NewFont(w *Window) *Font {
	return &Font{w: w, face: text.NewGoXFace(basicfont.Face7x13)}
}

func scaleOf(size core.FontSize) float64 {
	if size == core.FontLarge {
		return 2
	}
	return 1
}

// DrawText implements core.Font. pos is the top-left corner of the text.
func (f *Font) DrawText(c core.Color, pos core.Point, s string, size core.FontSize) {
	if f.w.target == nil {
		return
	}
	f.w.flush()

	op := &text.DrawOptions{}
	op.GeoM.Scale(scaleOf(size), scaleOf(size))
	op.GeoM.Translate(float64(pos.X), float64(pos.Y))
	op.ColorScale.ScaleWithColor(nrgba(c))
	text.Draw(f.w.target, s, f.face, op)
}

// TextWidth implements core.Font.
func (f *Font) TextWidth(s string, size core.FontSize) int {
	return int(math.Ceil(text.Advance(s, f.face) * scaleOf(size)))
}

// LineHeight implements core.Font.
func (f *Font) LineHeight(size core.FontSize) int {
	m := f.face.Metrics()
	return int(math.Ceil((m.HAscent + m.HDescent) * scaleOf(size)))
}
