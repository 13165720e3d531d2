package core

import "math"

// NominalTickRate is the frame rate the game was designed for. A dilation of
// 1.0 means exactly one tick at this rate has elapsed.
const NominalTickRate = 60

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in pixels
	ScreenH  int   // Screen height in pixels
	TickRate int   // Target frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Debug    bool  // Treat invariant violations as fatal
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  400,
		ScreenH:  240,
		TickRate: NominalTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Metrics are the screen-derived sizes of the play field.
type Metrics struct {
	HexLength      float64 // Radius of the central polygon
	HexBorder      float64 // Width of the polygon's inner border
	HumanPadding   float64 // Gap between polygon and cursor
	HumanHeight    float64 // Radial size of the cursor
	HumanWidth     float64 // Angular size of the cursor in radians
	RenderDistance float64 // Radius that covers the whole screen
}

// MetricsFor derives play-field metrics from a screen size.
func MetricsFor(dim Point) Metrics {
	lo := float64(Min(dim.X, dim.Y))
	hi := float64(Max(dim.X, dim.Y))
	return Metrics{
		HexLength:      math.Floor(lo / 10),
		HexBorder:      math.Floor(lo / 60),
		HumanPadding:   math.Floor(lo / 48),
		HumanHeight:    math.Floor(lo / 48),
		HumanWidth:     Tau / 30,
		RenderDistance: hi,
	}
}

// Dilation converts an elapsed frame time in seconds to nominal ticks.
func Dilation(elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	return elapsedSeconds * NominalTickRate
}
