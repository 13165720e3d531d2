// Package registry provides a global registry for game modes.
// Modes register themselves in init() functions, allowing the CLI and the
// platforms to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/sim"
)

// Mode is a rule set layered over the level files: it may tune the
// simulation and rewrite the level list a session plays.
type Mode interface {
	// ID returns a unique identifier for this mode (e.g., "classic", "hyper").
	// Used for CLI flags and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Configure adjusts simulation options before a session starts.
	Configure(opts *sim.Options)

	// Levels returns the levels playable in this mode. Implementations must
	// not modify the input; they return copies when they change a level.
	Levels(all []level.Level) []level.Level
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a mode.
type Factory func() Mode

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ModeInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new mode by its ID.
// Returns an error if the mode ID is not registered.
func Create(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return f(), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
