package config

import (
	_ "embed"
)

//go:embed defaults/superhex.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration used when no file is usable.
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRate:         60,
			TransitionFrames: 12,
			Capacity:         8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 60 * 60 * 2,
			},
			Scaling: ScalingConfig{
				WallSpeed:     0.6,
				RotationSpeed: 0.5,
			},
		},
		Terminal: TerminalConfig{
			HoldMillis: 120,
			MaxCols:    160,
			MaxRows:    60,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.3,
		},
	}
}
