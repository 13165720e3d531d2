package tui

import (
	"unicode/utf8"

	"github.com/vovakirdan/superhex/internal/core"
)

// CellFont draws text into a Screen's glyph overlay. One character is one
// cell: a pixel wide and two pixels tall. The large size is drawn bold.
type CellFont struct {
	screen *core.Screen
}

// NewCellFont creates a font drawing on s.
func NewCellFont(s *core.Screen) *CellFont {
	return &CellFont{screen: s}
}

// DrawText implements core.Font.
func (f *CellFont) DrawText(c core.Color, pos core.Point, text string, size core.FontSize) {
	f.screen.DrawText(pos.X, pos.Y, text, c, size == core.FontLarge)
}

// TextWidth implements core.Font.
func (f *CellFont) TextWidth(text string, _ core.FontSize) int {
	return utf8.RuneCountInString(text)
}

// LineHeight implements core.Font.
func (f *CellFont) LineHeight(core.FontSize) int {
	return 2
}
