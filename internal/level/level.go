// Package level holds the static level and pattern definitions: the data
// model, its validation, and loading from YAML files.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/superhex/internal/core"
)

// ErrConfiguration is wrapped by every error caused by malformed or missing
// level data. Use errors.Is to detect it.
var ErrConfiguration = errors.New("invalid level configuration")

// Order controls how a level picks its next pattern.
type Order string

const (
	OrderSequential Order = "sequential"
	OrderRandom     Order = "random"
)

// WallSpec is one wall inside a pattern template.
type WallSpec struct {
	Side     int     // Polygon side the wall occupies, taken modulo the side count
	Distance float64 // Offset behind the pattern's leading edge
	Height   float64 // Radial thickness
}

// Pattern is a template of walls that spawn together as one wave.
type Pattern struct {
	Name  string
	Walls []WallSpec
}

// Level is a static level definition. It is never mutated after loading and
// may be shared by any number of running sessions.
type Level struct {
	ID         string
	Name       string
	Difficulty string
	Mode       string
	Creator    string

	ColorsFG  []core.Color
	ColorsBG1 []core.Color
	ColorsBG2 []core.Color

	RotationSpeed    float64 // Radians per tick
	PulsePeriod      float64 // Ticks per color tween
	WallSpeed        float64 // Distance units per tick
	SpawnInterval    float64 // Ticks between pattern spawns
	Sides            int     // Starting side count
	SidesMin         int     // Lowest side count reachable by side changes
	SidesMax         int     // Highest side count reachable by side changes
	SideChangeChance float64 // Chance per pulse of picking a new side count
	SpeedJitter      float64 // Max fractional rotation speed change per pulse
	ReverseEvery     int     // Pulses between rotation reversals, 0 for never
	Order            Order

	Patterns []Pattern

	Source string // File the level was loaded from, empty when embedded
}

// ValidationError describes why a level was rejected.
type ValidationError struct {
	Level   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("level %q: [%s] %s", e.Level, e.Code, e.Message)
}

// Unwrap lets callers match any validation failure with ErrConfiguration.
func (e ValidationError) Unwrap() error {
	return ErrConfiguration
}

// Validate checks that the level can be played. The returned error wraps
// ErrConfiguration.
func (l *Level) Validate() error {
	fail := func(code, format string, args ...any) error {
		return ValidationError{Level: l.ID, Code: code, Message: fmt.Sprintf(format, args...)}
	}

	if l.ID == "" {
		return fail("MISSING_ID", "level has no id")
	}
	if l.Name == "" {
		return fail("MISSING_NAME", "level has no name")
	}
	if len(l.ColorsFG) == 0 || len(l.ColorsBG1) == 0 || len(l.ColorsBG2) == 0 {
		return fail("EMPTY_PALETTE", "fg, bg1 and bg2 palettes need at least one color each")
	}
	if l.PulsePeriod <= 0 {
		return fail("BAD_PULSE", "pulse period must be positive, got %v", l.PulsePeriod)
	}
	if l.WallSpeed <= 0 {
		return fail("BAD_WALL_SPEED", "wall speed must be positive, got %v", l.WallSpeed)
	}
	if l.SpawnInterval <= 0 {
		return fail("BAD_SPAWN_INTERVAL", "spawn interval must be positive, got %v", l.SpawnInterval)
	}
	if l.Sides < 3 {
		return fail("BAD_SIDES", "a level needs at least 3 sides, got %d", l.Sides)
	}
	if l.SidesMin < 3 || l.SidesMax < l.SidesMin || l.Sides < l.SidesMin || l.Sides > l.SidesMax {
		return fail("BAD_SIDE_RANGE", "sides %d not within range [%d, %d]", l.Sides, l.SidesMin, l.SidesMax)
	}
	if l.SideChangeChance < 0 || l.SideChangeChance > 1 {
		return fail("BAD_CHANCE", "side change chance must be within [0, 1], got %v", l.SideChangeChance)
	}
	if l.SpeedJitter < 0 || l.SpeedJitter >= 1 {
		return fail("BAD_JITTER", "speed jitter must be within [0, 1), got %v", l.SpeedJitter)
	}
	if l.ReverseEvery < 0 {
		return fail("BAD_REVERSE", "reverse_every must not be negative, got %d", l.ReverseEvery)
	}
	if l.Order != OrderSequential && l.Order != OrderRandom {
		return fail("BAD_ORDER", "unknown pattern order %q", l.Order)
	}
	if len(l.Patterns) == 0 {
		return fail("NO_PATTERNS", "level has no patterns")
	}
	for i, p := range l.Patterns {
		if len(p.Walls) == 0 {
			return fail("EMPTY_PATTERN", "pattern %d (%s) has no walls", i, p.Name)
		}
		for j, w := range p.Walls {
			if w.Side < 0 {
				return fail("BAD_WALL", "pattern %s wall %d has negative side", p.Name, j)
			}
			if w.Height <= 0 {
				return fail("BAD_WALL", "pattern %s wall %d has non-positive height", p.Name, j)
			}
			if w.Distance < 0 {
				return fail("BAD_WALL", "pattern %s wall %d has negative distance", p.Name, j)
			}
		}
	}
	return nil
}

// PaletteLen returns the length of the palette cycle used for tween indices.
// The three palettes cycle independently, so this is per palette.
func (l *Level) PaletteLen(p Palette) int {
	return len(l.Palette(p))
}

// Palette selects one of a level's three color sequences.
type Palette int

const (
	PaletteFG Palette = iota
	PaletteBG1
	PaletteBG2
	PaletteCount
)

// Palette returns the colors of the given palette.
func (l *Level) Palette(p Palette) []core.Color {
	switch p {
	case PaletteFG:
		return l.ColorsFG
	case PaletteBG1:
		return l.ColorsBG1
	case PaletteBG2:
		return l.ColorsBG2
	default:
		return nil
	}
}

// MaxPatternDepth returns the largest distance+height of any wall in any
// pattern, i.e. how far a whole pattern reaches behind its leading edge.
func (l *Level) MaxPatternDepth() float64 {
	var depth float64
	for _, p := range l.Patterns {
		for _, w := range p.Walls {
			if d := w.Distance + w.Height; d > depth {
				depth = d
			}
		}
	}
	return depth
}
