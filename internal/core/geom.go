// Package core provides the geometry, value types and collaborator interfaces
// shared by the simulation, the renderer and the platforms. It contains no
// external dependencies so that game logic stays pure and testable.
package core

import "math"

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// Point is a position on the screen in whole pixels.
type Point struct {
	X, Y int
}

// Pt is shorthand for constructing a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Triangle is three screen points. Winding is not significant.
type Triangle [3]Point

// ColoredTriangle pairs a triangle with its fill color.
type ColoredTriangle struct {
	Color    Color
	Triangle Triangle
}

// Wall is one wall segment in polar terms: the polygon side it occupies and
// the radial interval [Distance, Distance+Height] it covers.
type Wall struct {
	Side     int
	Distance float64
	Height   float64
}

// CalcPoint converts a polar position around focus into a screen point.
// The angle is rotation+offset; the result is rounded to the nearest pixel.
// Walls, the cursor and polygon vertices are all placed through here so that
// what is drawn and what is tested for collision never disagree.
func CalcPoint(focus Point, rotation, offset, radius float64) Point {
	angle := rotation + offset
	return Point{
		X: int(math.Round(float64(focus.X) + radius*math.Cos(angle))),
		Y: int(math.Round(float64(focus.Y) + radius*math.Sin(angle))),
	}
}

// ExactSides returns the number of vertices needed to draw a polygon with the
// given (possibly fractional) side count.
func ExactSides(sides float64) int {
	if sides <= 0 {
		return 0
	}
	return int(math.Ceil(sides - 1e-9))
}

// polygonEdges appends the vertices of a regular polygon to dst.
func polygonEdges(dst []Point, focus Point, radius, rotation, sides float64) []Point {
	exact := ExactSides(sides)
	for i := 0; i < exact; i++ {
		dst = append(dst, CalcPoint(focus, rotation, float64(i)*Tau/sides, radius))
	}
	return dst
}

// RegularPolygon fan-triangulates a regular polygon around focus.
// With a fractional side count the closing wedge is the partially drawn side.
func RegularPolygon(focus Point, radius, rotation, sides float64) []Triangle {
	return AppendRegularPolygon(nil, focus, radius, rotation, sides)
}

// AppendRegularPolygon is RegularPolygon writing into a caller-owned slice.
func AppendRegularPolygon(dst []Triangle, focus Point, radius, rotation, sides float64) []Triangle {
	var buf [16]Point
	edges := polygonEdges(buf[:0], focus, radius, rotation, sides)
	n := len(edges)
	if n < 2 {
		return dst
	}

	// Closing wedge first so the remaining fan overlaps it.
	dst = append(dst, Triangle{focus, edges[n-1], edges[0]})
	for i := 0; i < n-1; i++ {
		dst = append(dst, Triangle{focus, edges[i], edges[i+1]})
	}
	return dst
}

// Background returns the radiating wedges drawn behind the play field.
// Every other wedge is filled with colorB; colorA is expected to already cover
// the screen. An odd side count gets a seam wedge in the midpoint color.
func Background(colorA, colorB Color, focus Point, radius, rotation, sides float64) []ColoredTriangle {
	return AppendBackground(nil, colorA, colorB, focus, radius, rotation, sides)
}

// AppendBackground is Background writing into a caller-owned slice.
func AppendBackground(dst []ColoredTriangle, colorA, colorB Color, focus Point, radius, rotation, sides float64) []ColoredTriangle {
	var buf [16]Point
	edges := polygonEdges(buf[:0], focus, radius, rotation, sides)
	n := len(edges)
	if n < 2 {
		return dst
	}

	if n%2 == 1 {
		dst = append(dst, ColoredTriangle{
			Color:    ColorLerp(colorA, colorB, 0.5),
			Triangle: Triangle{focus, edges[n-1], edges[0]},
		})
	}
	for i := 0; i < n-1; i += 2 {
		dst = append(dst, ColoredTriangle{
			Color:    colorB,
			Triangle: Triangle{focus, edges[i], edges[i+1]},
		})
	}
	return dst
}

// WallTrapezoid returns the four corners of a wall between Distance and
// Distance+Height. Both angular edges are pushed outward by overflow so that
// neighbouring walls overlap instead of leaving a hairline gap.
func WallTrapezoid(focus Point, rotation, overflow float64, wall Wall, sides float64) [4]Point {
	left, right := SideSpan(wall.Side, sides)
	outer := wall.Distance + wall.Height

	return [4]Point{
		CalcPoint(focus, rotation, right+overflow, wall.Distance),
		CalcPoint(focus, rotation, right+overflow, outer),
		CalcPoint(focus, rotation, left-overflow, outer),
		CalcPoint(focus, rotation, left-overflow, wall.Distance),
	}
}

// SideSpan returns the angular interval [left, right) of a side in the
// polygon's own frame. With a fractional side count the last side is the
// partial closing wedge and ends at Tau.
func SideSpan(side int, sides float64) (left, right float64) {
	width := Tau / sides
	left = float64(side) * width
	right = float64(side+1) * width
	if side == ExactSides(sides)-1 && right > Tau {
		right = Tau
	}
	return left, right
}

// TrapezoidTriangles splits a quad into two triangles sharing the first corner.
func TrapezoidTriangles(q [4]Point) [2]Triangle {
	return [2]Triangle{
		{q[0], q[1], q[2]},
		{q[0], q[2], q[3]},
	}
}

// AngleWrap maps an angle into [0, Tau).
func AngleWrap(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	if a >= Tau {
		a = 0
	}
	return a
}

// SideAt returns which side of a polygon with the given side count lies under
// the angle (measured in the polygon's own frame).
func SideAt(angle float64, sides int) int {
	if sides <= 0 {
		return 0
	}
	side := int(math.Floor(AngleWrap(angle) / (Tau / float64(sides))))
	return Clamp(side, 0, sides-1)
}

// Linear interpolates between start and end.
func Linear(start, end, percent float64) float64 {
	return (end-start)*percent + start
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
