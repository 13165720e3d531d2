package core

import (
	"math"
	"testing"
)

func dist(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func TestCalcPointRadius(t *testing.T) {
	focus := Pt(200, 120)
	for _, radius := range []float64{10, 57.3, 400} {
		for r := -10.0; r <= 10.0; r += 0.37 {
			p := CalcPoint(focus, r, 0, radius)
			// Rounding to whole pixels moves a point by at most sqrt(0.5).
			if d := dist(p, focus); math.Abs(d-radius) > math.Sqrt2/2+1e-9 {
				t.Fatalf("CalcPoint(rot=%v, r=%v) at distance %v", r, radius, d)
			}
		}
	}
}

func TestCalcPointOffsetAddsToRotation(t *testing.T) {
	focus := Pt(0, 0)
	a := CalcPoint(focus, 1.0, 0.5, 100)
	b := CalcPoint(focus, 1.5, 0, 100)
	if a != b {
		t.Errorf("CalcPoint(1.0, 0.5) = %v, CalcPoint(1.5, 0) = %v", a, b)
	}
}

func TestRegularPolygonEvenSpacing(t *testing.T) {
	focus := Pt(0, 0)
	const radius = 10000.0
	for sides := 3; sides <= 9; sides++ {
		tris := RegularPolygon(focus, radius, 0.3, float64(sides))
		if len(tris) != sides {
			t.Fatalf("sides=%d: got %d triangles", sides, len(tris))
		}
		want := Tau / float64(sides)
		for i, tri := range tris {
			if tri[0] != focus {
				t.Errorf("sides=%d tri %d not fanned from focus", sides, i)
			}
			a1 := math.Atan2(float64(tri[1].Y), float64(tri[1].X))
			a2 := math.Atan2(float64(tri[2].Y), float64(tri[2].X))
			got := AngleWrap(a2 - a1)
			if math.Abs(got-want) > 1e-3 {
				t.Errorf("sides=%d tri %d spans %v, want %v", sides, i, got, want)
			}
		}
	}
}

func TestRegularPolygonFractionalSides(t *testing.T) {
	tests := []struct {
		sides float64
		want  int
	}{
		{6, 6},
		{5.5, 6},
		{5.01, 6},
		{4, 4},
		{0, 0},
	}
	for _, tc := range tests {
		got := len(RegularPolygon(Pt(0, 0), 100, 0, tc.sides))
		if got != tc.want {
			t.Errorf("sides=%v: %d triangles, want %d", tc.sides, got, tc.want)
		}
	}
}

func TestBackgroundSeam(t *testing.T) {
	a := RGB(0, 0, 0)
	b := RGB(200, 100, 50)

	even := Background(a, b, Pt(0, 0), 100, 0, 6)
	if len(even) != 3 {
		t.Fatalf("6 sides: %d wedges, want 3", len(even))
	}
	for _, w := range even {
		if w.Color != b {
			t.Errorf("6 sides: wedge color %v, want %v", w.Color, b)
		}
	}

	odd := Background(a, b, Pt(0, 0), 100, 0, 5)
	if len(odd) != 3 {
		t.Fatalf("5 sides: %d wedges, want 3 (seam + 2)", len(odd))
	}
	if want := RGB(100, 50, 25); odd[0].Color != want {
		t.Errorf("seam color %v, want %v", odd[0].Color, want)
	}
}

func TestWallTrapezoidCorners(t *testing.T) {
	focus := Pt(0, 0)
	w := Wall{Side: 1, Distance: 100, Height: 50}
	q := WallTrapezoid(focus, 0, 0, w, 4)

	wantDist := []float64{100, 150, 150, 100}
	for i, p := range q {
		if d := dist(p, focus); math.Abs(d-wantDist[i]) > 1 {
			t.Errorf("corner %d at %v, want %v", i, d, wantDist[i])
		}
	}
	// Side 1 of a square spans [pi/2, pi]: right edge at pi, left at pi/2.
	if q[0] != Pt(-100, 0) {
		t.Errorf("corner 0 = %v, want (-100, 0)", q[0])
	}
	if q[3] != Pt(0, 100) {
		t.Errorf("corner 3 = %v, want (0, 100)", q[3])
	}
}

func TestSideSpan(t *testing.T) {
	tests := []struct {
		name        string
		side        int
		sides       float64
		left, right float64
	}{
		{"whole first", 0, 6, 0, Tau / 6},
		{"whole last", 5, 6, 5 * Tau / 6, Tau},
		{"fractional middle", 2, 5.5, 2 * Tau / 5.5, 3 * Tau / 5.5},
		{"fractional closing wedge", 5, 5.5, 5 * Tau / 5.5, Tau},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := SideSpan(tt.side, tt.sides)
			if math.Abs(left-tt.left) > 1e-9 || math.Abs(right-tt.right) > 1e-9 {
				t.Errorf("SideSpan = [%v, %v), want [%v, %v)", left, right, tt.left, tt.right)
			}
		})
	}
}

func TestWallTrapezoidClosingWedge(t *testing.T) {
	focus := Pt(0, 0)
	q := WallTrapezoid(focus, 0, 0, Wall{Side: 5, Distance: 1000, Height: 10}, 5.5)

	// The right edge ends on the polygon's first vertex instead of reaching
	// into side 0.
	for _, i := range []int{0, 1} {
		angle := AngleWrap(math.Atan2(float64(q[i].Y), float64(q[i].X)))
		if angle > 0.01 && angle < Tau-0.01 {
			t.Errorf("corner %d at %v rad, want the closing edge at 0", i, angle)
		}
	}
	if q[0] != Pt(1000, 0) {
		t.Errorf("corner 0 = %v, want (1000, 0)", q[0])
	}
}

func TestSideAt(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		sides int
		want  int
	}{
		{"zero", 0, 6, 0},
		{"inside first", Tau/12 - 0.01, 6, 0},
		{"second", Tau/6 + 0.01, 6, 1},
		{"last", Tau - 0.001, 6, 5},
		{"negative wraps", -0.001, 6, 5},
		{"over a turn", Tau + 0.01, 4, 0},
		{"no sides", 1, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SideAt(tc.angle, tc.sides); got != tc.want {
				t.Errorf("SideAt(%v, %d) = %d, want %d", tc.angle, tc.sides, got, tc.want)
			}
		})
	}
}

func TestAngleWrap(t *testing.T) {
	for _, a := range []float64{-20, -Tau, -0.1, 0, 3, Tau, 50} {
		got := AngleWrap(a)
		if got < 0 || got >= Tau {
			t.Errorf("AngleWrap(%v) = %v out of range", a, got)
		}
		if math.Abs(math.Sin(got)-math.Sin(a)) > 1e-9 {
			t.Errorf("AngleWrap(%v) = %v changed the angle", a, got)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMetricsFor(t *testing.T) {
	m := MetricsFor(Pt(400, 240))
	if m.HexLength != 24 || m.HexBorder != 4 || m.HumanPadding != 5 || m.RenderDistance != 400 {
		t.Errorf("MetricsFor(400x240) = %+v", m)
	}
}
