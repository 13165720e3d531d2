// Package modes registers the built-in game modes.
package modes

import (
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/registry"
	"github.com/vovakirdan/superhex/internal/sim"
)

func init() {
	registry.Register(Classic{}.ID(), func() registry.Mode { return Classic{} })
}

// Classic plays the levels exactly as defined.
type Classic struct{}

func (Classic) ID() string { return "classic" }

func (Classic) Title() string { return "Classic" }

func (Classic) Configure(*sim.Options) {}

func (Classic) Levels(all []level.Level) []level.Level {
	return all
}
