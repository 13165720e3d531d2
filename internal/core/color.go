package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// Predefined colors used by the HUD and shadows.
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(0xFF, 0xFF, 0xFF)
	ColorGrey    = RGB(0xA0, 0xA0, 0xA0)
	ColorShadow  = Color{A: 0xC0}
	ColorOverlay = Color{A: 0xA0}
)

// ColorLerp linearly interpolates each channel from one to two.
// t is clamped to [0, 1].
func ColorLerp(one, two Color, t float64) Color {
	t = ClampF(t, 0, 1)
	ch := func(a, b uint8) uint8 {
		return uint8(math.Round(Linear(float64(a), float64(b), t)))
	}
	return Color{
		R: ch(one.R, two.R),
		G: ch(one.G, two.G),
		B: ch(one.B, two.B),
		A: ch(one.A, two.A),
	}
}

// String returns the color as #RRGGBB, or #RRGGBBAA when not opaque.
func (c Color) String() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses #RGB, #RRGGBB or #RRGGBBAA (the leading # is optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "FF"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
