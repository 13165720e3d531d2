package core

import "math"

// Glyph is a text character overlaid on a screen cell.
type Glyph struct {
	Rune  rune
	Color Color
	Bold  bool
}

// Screen is an RGBA pixel buffer with a text overlay, used by platforms that
// have no GPU to rasterize into (the terminal). Every text cell covers two
// vertically stacked pixels so a cell can be shown as one half-block.
type Screen struct {
	width  int // pixels
	height int // pixels, always even
	pixels []Color
	glyphs []Glyph // one per cell, Rune == 0 means none
}

// NewScreen creates a screen of cols x rows text cells (cols x 2*rows pixels).
func NewScreen(cols, rows int) *Screen {
	s := &Screen{}
	s.Resize(cols, rows)
	return s
}

// allocate creates the underlying pixel and glyph storage.
func (s *Screen) allocate() {
	s.pixels = make([]Color, s.width*s.height)
	s.glyphs = make([]Glyph, s.width*(s.height/2))
}

// Width returns the screen width in pixels (equal to the column count).
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in pixels (twice the row count).
func (s *Screen) Height() int {
	return s.height
}

// Rows returns the number of text cells stacked vertically.
func (s *Screen) Rows() int {
	return s.height / 2
}

// ScreenDim implements Drawer.
func (s *Screen) ScreenDim() Point {
	return Point{X: s.width, Y: s.height}
}

// Resize changes the screen to cols x rows cells. Content is discarded.
func (s *Screen) Resize(cols, rows int) {
	cols = Max(cols, 0)
	rows = Max(rows, 0)
	if cols == s.width && rows*2 == s.height && s.pixels != nil {
		return
	}
	s.width = cols
	s.height = rows * 2
	s.allocate()
	s.Clear()
}

// Clear fills the screen with opaque black and removes all text.
func (s *Screen) Clear() {
	s.Fill(ColorBlack)
	for i := range s.glyphs {
		s.glyphs[i] = Glyph{}
	}
}

// Fill sets every pixel to c without blending.
func (s *Screen) Fill(c Color) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// Set blends c over the pixel at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := y*s.width + x
	s.pixels[i] = blend(s.pixels[i], c)
}

// Get returns the pixel at (x, y), black when out of bounds.
func (s *Screen) Get(x, y int) Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ColorBlack
	}
	return s.pixels[y*s.width+x]
}

// Cell returns the two pixels and the glyph shown in text cell (col, row).
func (s *Screen) Cell(col, row int) (top, bottom Color, g Glyph) {
	if col < 0 || col >= s.width || row < 0 || row >= s.Rows() {
		return ColorBlack, ColorBlack, Glyph{}
	}
	return s.Get(col, row*2), s.Get(col, row*2+1), s.glyphs[row*s.width+col]
}

// DrawText writes text into the overlay starting at pixel (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color, bold bool) {
	row := y / 2
	if row < 0 || row >= s.Rows() {
		return
	}
	col := x
	for _, r := range text {
		if col >= 0 && col < s.width {
			s.glyphs[row*s.width+col] = Glyph{Rune: r, Color: c, Bold: bold}
		}
		col++
	}
}

// DrawRect implements Drawer by filling an axis-aligned rectangle.
func (s *Screen) DrawRect(c Color, pos, size Point) {
	x0, y0 := Max(pos.X, 0), Max(pos.Y, 0)
	x1, y1 := Min(pos.X+size.X, s.width), Min(pos.Y+size.Y, s.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.Set(x, y, c)
		}
	}
}

// DrawTriangle implements Drawer. A pixel is covered when its center lies
// inside the triangle or on one of its edges.
func (s *Screen) DrawTriangle(c Color, t Triangle) {
	minX := Max(Min(t[0].X, Min(t[1].X, t[2].X)), 0)
	maxX := Min(Max(t[0].X, Max(t[1].X, t[2].X)), s.width-1)
	minY := Max(Min(t[0].Y, Min(t[1].Y, t[2].Y)), 0)
	maxY := Min(Max(t[0].Y, Max(t[1].Y, t[2].Y)), s.height-1)

	area := edge(t[0], t[1], float64(t[2].X), float64(t[2].Y))
	if area == 0 {
		return
	}
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(t[1], t[2], px, py)
			w1 := edge(t[2], t[0], px, py)
			w2 := edge(t[0], t[1], px, py)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				s.Set(x, y, c)
			}
		}
	}
}

// edge is the signed area test of point p against the edge a->b.
func edge(a, b Point, px, py float64) float64 {
	return (float64(b.X)-float64(a.X))*(py-float64(a.Y)) - (float64(b.Y)-float64(a.Y))*(px-float64(a.X))
}

// blend composites src over dst; the result is always opaque.
func blend(dst, src Color) Color {
	if src.A == 0xFF {
		return src
	}
	if src.A == 0 {
		return dst
	}
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}
