// Package config provides YAML-based game tuning and difficulty presets.
package config

// Config contains every tunable outside the level files.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Terminal   TerminalConfig   `yaml:"terminal"`
	Audio      AudioConfig      `yaml:"audio"`
}

// GameConfig defines simulation and flow parameters.
type GameConfig struct {
	TickRate         int     `yaml:"tick_rate"`         // Frames per second the platforms aim for
	TransitionFrames float64 `yaml:"transition_frames"` // Menu level change animation length in ticks
	Capacity         int     `yaml:"capacity"`          // Maximum concurrent patterns
	Strict           bool    `yaml:"strict"`            // Panic on simulation invariant violations
}

// TerminalConfig defines terminal rendering parameters.
type TerminalConfig struct {
	HoldMillis int `yaml:"hold_ms"`  // How long a key press counts as held without a repeat
	MaxCols    int `yaml:"max_cols"` // Upper bound on the rendered width in cells
	MaxRows    int `yaml:"max_rows"` // Upper bound on the rendered height in cells
}

// AudioConfig defines the synthesizer parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // Gain in [0, 1]
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	WallSpeed     float64 `yaml:"wall_speed"`     // Multiplier added to wall speed at max difficulty
	RotationSpeed float64 `yaml:"rotation_speed"` // Multiplier added to rotation speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. An empty name selects normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	if name == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}
