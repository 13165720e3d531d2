package config

import "math"

// DifficultyManager calculates speed multipliers based on time survived.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type == "time"
}

// Level returns the current difficulty level (0.0 to 1.0) after ticks survived.
func (d *DifficultyManager) Level(ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(ticks)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// WallScale returns the wall speed multiplier after ticks survived.
func (d *DifficultyManager) WallScale(ticks int) float64 {
	return 1.0 + d.Level(ticks)*d.cfg.Scaling.WallSpeed
}

// RotationScale returns the rotation speed multiplier at the start of a run.
func (d *DifficultyManager) RotationScale() float64 {
	return 1.0 + d.initialLevel*d.cfg.Scaling.RotationSpeed
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
