package modes

import (
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/registry"
	"github.com/vovakirdan/superhex/internal/sim"
)

// Hyper tuning.
const (
	HyperWallScale   = 1.3 // Wall speed multiplier
	HyperRotateScale = 1.5 // Rotation speed multiplier
	HyperSidesMin    = 4
	HyperSidesMax    = 8
	HyperSideChance  = 0.2 // Minimum side change chance per pulse
)

func init() {
	registry.Register(Hyper{}.ID(), func() registry.Mode { return Hyper{} })
}

// Hyper speeds everything up and lets every level change its side count.
type Hyper struct{}

func (Hyper) ID() string { return "hyper" }

func (Hyper) Title() string { return "Hyper" }

func (Hyper) Configure(opts *sim.Options) {
	opts.WallScale *= HyperWallScale
	opts.RotateScale *= HyperRotateScale
}

func (Hyper) Levels(all []level.Level) []level.Level {
	out := make([]level.Level, len(all))
	for i, lvl := range all {
		lvl.Mode = "HYPER"
		lvl.SidesMin = min(lvl.SidesMin, HyperSidesMin)
		lvl.SidesMax = max(lvl.SidesMax, HyperSidesMax)
		lvl.SideChangeChance = max(lvl.SideChangeChance, HyperSideChance)
		out[i] = lvl
	}
	return out
}
