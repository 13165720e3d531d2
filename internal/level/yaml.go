package level

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/superhex/internal/core"
)

// YAMLPack is the on-disk layout of a level file: a library of named
// patterns shared by the levels that follow it.
type YAMLPack struct {
	Patterns []YAMLPattern `yaml:"patterns"`
	Levels   []YAMLLevel   `yaml:"levels"`
}

// YAMLPattern is a named pattern template.
type YAMLPattern struct {
	Name  string     `yaml:"name"`
	Walls []YAMLWall `yaml:"walls"`
}

// YAMLWall is one wall of a pattern.
type YAMLWall struct {
	Side     int     `yaml:"side"`
	Distance float64 `yaml:"distance"`
	Height   float64 `yaml:"height"`
}

// YAMLColors holds the three palettes as hex strings.
type YAMLColors struct {
	FG  []string `yaml:"fg"`
	BG1 []string `yaml:"bg1"`
	BG2 []string `yaml:"bg2"`
}

// YAMLLevel is one level. Patterns refer to the pack library by name.
type YAMLLevel struct {
	ID               string     `yaml:"id"`
	Name             string     `yaml:"name"`
	Difficulty       string     `yaml:"difficulty"`
	Mode             string     `yaml:"mode"`
	Creator          string     `yaml:"creator"`
	Colors           YAMLColors `yaml:"colors"`
	RotationSpeed    float64    `yaml:"rotation_speed"`
	Pulse            float64    `yaml:"pulse"`
	WallSpeed        float64    `yaml:"wall_speed"`
	SpawnInterval    float64    `yaml:"spawn_interval"`
	Sides            int        `yaml:"sides"`
	SidesMin         int        `yaml:"sides_min,omitempty"`
	SidesMax         int        `yaml:"sides_max,omitempty"`
	SideChangeChance float64    `yaml:"side_change_chance,omitempty"`
	SpeedJitter      float64    `yaml:"speed_jitter,omitempty"`
	ReverseEvery     int        `yaml:"reverse_every,omitempty"`
	Order            string     `yaml:"order,omitempty"`
	Patterns         []string   `yaml:"patterns"`
}

// ParseYAML decodes a level pack. Errors wrap ErrConfiguration; levels are
// decoded but not validated.
func ParseYAML(data []byte) ([]Level, error) {
	var pack YAMLPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("%w: yaml unmarshal: %v", ErrConfiguration, err)
	}

	library := make(map[string]Pattern, len(pack.Patterns))
	for _, yp := range pack.Patterns {
		if yp.Name == "" {
			return nil, fmt.Errorf("%w: pattern without a name", ErrConfiguration)
		}
		if _, dup := library[yp.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern %q", ErrConfiguration, yp.Name)
		}
		p := Pattern{Name: yp.Name, Walls: make([]WallSpec, 0, len(yp.Walls))}
		for _, w := range yp.Walls {
			p.Walls = append(p.Walls, WallSpec(w))
		}
		library[yp.Name] = p
	}

	levels := make([]Level, 0, len(pack.Levels))
	for _, yl := range pack.Levels {
		lvl, err := yl.toLevel(library)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

func (yl YAMLLevel) toLevel(library map[string]Pattern) (Level, error) {
	lvl := Level{
		ID:               yl.ID,
		Name:             yl.Name,
		Difficulty:       yl.Difficulty,
		Mode:             yl.Mode,
		Creator:          yl.Creator,
		RotationSpeed:    yl.RotationSpeed,
		PulsePeriod:      yl.Pulse,
		WallSpeed:        yl.WallSpeed,
		SpawnInterval:    yl.SpawnInterval,
		Sides:            yl.Sides,
		SidesMin:         yl.SidesMin,
		SidesMax:         yl.SidesMax,
		SideChangeChance: yl.SideChangeChance,
		SpeedJitter:      yl.SpeedJitter,
		ReverseEvery:     yl.ReverseEvery,
		Order:            Order(yl.Order),
	}
	if lvl.ID == "" {
		lvl.ID = yl.Name
	}
	if lvl.SidesMin == 0 {
		lvl.SidesMin = lvl.Sides
	}
	if lvl.SidesMax == 0 {
		lvl.SidesMax = lvl.Sides
	}
	if lvl.Order == "" {
		lvl.Order = OrderSequential
	}

	var err error
	if lvl.ColorsFG, err = parseColors(yl.Colors.FG); err != nil {
		return Level{}, fmt.Errorf("%w: level %q fg: %v", ErrConfiguration, lvl.ID, err)
	}
	if lvl.ColorsBG1, err = parseColors(yl.Colors.BG1); err != nil {
		return Level{}, fmt.Errorf("%w: level %q bg1: %v", ErrConfiguration, lvl.ID, err)
	}
	if lvl.ColorsBG2, err = parseColors(yl.Colors.BG2); err != nil {
		return Level{}, fmt.Errorf("%w: level %q bg2: %v", ErrConfiguration, lvl.ID, err)
	}

	for _, name := range yl.Patterns {
		p, ok := library[name]
		if !ok {
			return Level{}, fmt.Errorf("%w: level %q uses unknown pattern %q", ErrConfiguration, lvl.ID, name)
		}
		lvl.Patterns = append(lvl.Patterns, p)
	}
	return lvl, nil
}

func parseColors(in []string) ([]core.Color, error) {
	out := make([]core.Color, 0, len(in))
	for _, s := range in {
		c, err := core.ParseColor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
