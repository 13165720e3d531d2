package render

import (
	"math"

	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/sim"
)

// ShadowOffset is where shadows land relative to their shape, in design
// pixels.
var ShadowOffset = core.Pt(4, -4)

// Renderer composes frames. It owns its batch and scratch buffers and is not
// safe for concurrent use; each session has its own.
type Renderer struct {
	batch Batch
	tris  []core.Triangle
	wedge []core.ColoredTriangle
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Batch exposes the renderer's batch for callers that stage extra shapes.
func (r *Renderer) Batch() *Batch {
	return &r.batch
}

// Scene is everything needed to draw the play field once.
type Scene struct {
	Metrics  core.Metrics // Simulation-unit sizes, scaled to the screen
	Rotation float64
	Sides    float64
	Cursor   float64 // World-frame cursor angle
	FG       core.Color
	BG1      core.Color
	BG2      core.Color
	Patterns []sim.LivePattern
	Offset   float64 // Extra distance pushed onto every wall
	Focus    *core.Point
	Shadows  bool
	NoCursor bool
}

// SceneFor captures the state of a running level.
func SceneFor(live *sim.LiveLevel, offset float64) Scene {
	return Scene{
		Metrics:  live.Metrics(),
		Rotation: live.Rotation(),
		Sides:    live.Sides(),
		Cursor:   live.Cursor(),
		FG:       live.Color(level.PaletteFG),
		BG1:      live.Color(level.PaletteBG1),
		BG2:      live.Color(level.PaletteBG2),
		Patterns: live.Patterns(),
		Offset:   offset,
		Shadows:  true,
	}
}

// scaleFor maps simulation units to pixels so the central polygon keeps its
// proportion of the smaller screen dimension.
func scaleFor(dim core.Point, m core.Metrics) float64 {
	if m.HexLength <= 0 {
		return 1
	}
	return float64(core.Min(dim.X, dim.Y)) / (10 * m.HexLength)
}

// Play draws a scene: background, shadows, walls, the central polygon and
// the cursor, in that order.
func (r *Renderer) Play(d core.Drawer, s Scene) {
	dim := d.ScreenDim()
	focus := core.Pt(dim.X/2, dim.Y/2)
	if s.Focus != nil {
		focus = *s.Focus
	}
	scale := scaleFor(dim, s.Metrics)

	r.batch.Rect(s.BG1, core.Pt(0, 0), dim)
	r.wedge = core.AppendBackground(r.wedge[:0], s.BG1, s.BG2, focus,
		float64(core.Max(dim.X, dim.Y))*1.5, s.Rotation, s.Sides)
	for _, w := range r.wedge {
		r.batch.Triangle(w.Color, w.Triangle)
	}

	if s.Shadows {
		off := core.Pt(shadowPx(ShadowOffset.X, scale), shadowPx(ShadowOffset.Y, scale))
		r.field(focus.Add(off), s, scale, core.ColorShadow, core.ColorShadow, core.ColorShadow)
	}
	r.field(focus, s, scale, s.FG, s.BG2, s.FG)

	r.batch.Flush(d)
}

// field stages walls, polygon and cursor around focus.
func (r *Renderer) field(focus core.Point, s Scene, scale float64, fg, inner, cursor core.Color) {
	r.walls(focus, s, scale, fg)

	hex := s.Metrics.HexLength * scale
	r.tris = core.AppendRegularPolygon(r.tris[:0], focus, hex, s.Rotation, s.Sides)
	r.batch.Triangles(fg, r.tris)
	if inner != fg {
		border := math.Max(s.Metrics.HexBorder*scale, 1)
		r.tris = core.AppendRegularPolygon(r.tris[:0], focus, hex-border, s.Rotation, s.Sides)
		r.batch.Triangles(inner, r.tris)
	}

	if !s.NoCursor {
		r.batch.Triangle(cursor, CursorTriangle(focus, s.Metrics, scale, s.Cursor))
	}
}

// walls stages every visible wall as two triangles.
func (r *Renderer) walls(focus core.Point, s Scene, scale float64, c core.Color) {
	n := core.ExactSides(s.Sides)
	if n < 3 {
		return
	}
	for _, p := range s.Patterns {
		for _, w := range p.Walls {
			dist := w.Distance + s.Offset
			outer := dist + w.Height
			if outer <= 0 {
				continue
			}
			if dist < 0 {
				dist = 0
			}
			wall := core.Wall{
				Side:     w.Side % n,
				Distance: dist * scale,
				Height:   (outer - dist) * scale,
			}
			q := core.WallTrapezoid(focus, s.Rotation, sim.OverflowOffset, wall, s.Sides)
			for _, t := range core.TrapezoidTriangles(q) {
				r.batch.Triangle(c, t)
			}
		}
	}
}

// CursorTriangle returns the player's cursor: a triangle whose base sits at
// the collision radius and whose tip points outward.
func CursorTriangle(focus core.Point, m core.Metrics, scale, cursor float64) core.Triangle {
	base := (m.HexLength + m.HumanPadding) * scale
	tip := base + math.Max(m.HumanHeight*scale, 1)
	half := m.HumanWidth / 2
	return core.Triangle{
		core.CalcPoint(focus, cursor, 0, tip),
		core.CalcPoint(focus, cursor, half, base),
		core.CalcPoint(focus, cursor, -half, base),
	}
}

// Box draws a filled rectangle immediately.
func (r *Renderer) Box(d core.Drawer, c core.Color, pos, size core.Point) {
	r.batch.Rect(c, pos, size)
	r.batch.Flush(d)
}

func shadowPx(v int, scale float64) int {
	px := int(math.Round(float64(v) * scale))
	if px == 0 && v != 0 {
		if v > 0 {
			return 1
		}
		return -1
	}
	return px
}
