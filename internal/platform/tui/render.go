package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/superhex/internal/core"
)

// upperHalf shows the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const upperHalf = '▀'

// cellStyle is everything that decides how one cell is styled.
type cellStyle struct {
	fg, bg core.Color
	bold   bool
}

// styleOf returns the style and the rune shown for cell (col, row).
// Text cells are drawn on the average of their two pixels.
func styleOf(s *core.Screen, col, row int) (cellStyle, rune) {
	top, bottom, g := s.Cell(col, row)
	if g.Rune != 0 {
		return cellStyle{fg: g.Color, bg: core.ColorLerp(top, bottom, 0.5), bold: g.Bold}, g.Rune
	}
	return cellStyle{fg: top, bg: bottom}, upperHalf
}

// Painter converts Screens to styled strings. It caches one lipgloss style
// per color pair so steady frames allocate little.
type Painter struct {
	r      *lipgloss.Renderer
	styles map[cellStyle]lipgloss.Style
	sb     strings.Builder
	run    strings.Builder
}

// NewPainter creates a Painter for a renderer. SSH sessions pass their own
// renderer so the color profile matches the client terminal.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{r: r, styles: make(map[cellStyle]lipgloss.Style)}
}

func (p *Painter) style(cs cellStyle) lipgloss.Style {
	if st, ok := p.styles[cs]; ok {
		return st
	}
	st := p.r.NewStyle().
		Foreground(lipgloss.Color(cs.fg.String())).
		Background(lipgloss.Color(cs.bg.String())).
		Bold(cs.bold)
	p.styles[cs] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	p.sb.Reset()
	p.sb.Grow(s.Width()*s.Rows()*4 + s.Rows())

	for row := range s.Rows() {
		if row > 0 {
			p.sb.WriteRune('\n')
		}

		col := 0
		for col < s.Width() {
			start, _ := styleOf(s, col, row)

			p.run.Reset()
			for col < s.Width() {
				cs, r := styleOf(s, col, row)
				if cs != start {
					break
				}
				p.run.WriteRune(r)
				col++
			}
			p.sb.WriteString(p.style(start).Render(p.run.String()))
		}
	}
	return p.sb.String()
}

// RenderScreen renders s with the default renderer.
func RenderScreen(s *core.Screen) string {
	return NewPainter(nil).Render(s)
}
