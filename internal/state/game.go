// Package state implements the game flow: the Menu, Play and GameOver states
// and the Game that drives whichever one is active.
//
// States hand control to each other only by returning the next state from
// Update. Returning the receiver keeps the state, returning nil quits.
package state

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/render"
	"github.com/vovakirdan/superhex/internal/sim"
)

// State is one screen of the game.
type State interface {
	// Update advances the state by one frame and returns the state to run
	// next: the receiver to stay, another state to switch, nil to quit.
	Update(in core.Input, dilation float64) State
	// DrawTop draws the play field.
	DrawTop()
	// DrawBot draws the overlay: scores, prompts and frame rate.
	DrawBot()
	Enter()
	Exit()
}

// Deps are the collaborators a Game is built from. Only Drawer and Levels are
// required.
type Deps struct {
	Drawer   core.Drawer
	Font     core.Font
	Audio    core.Audio
	Store    core.ScoreStore
	Logger   *log.Logger
	Levels   []level.Level
	Options  sim.Options
	Seed     int64 // Pattern seed for every run, 0 for a time-based seed
	Watcher  *level.Watcher
	LevelDir string // Reloaded when Watcher reports changes

	// Prepare, if set, rewrites reloaded levels the way the session's mode
	// rewrote the initial ones.
	Prepare func([]level.Level) []level.Level

	// TransitionFrames is the length of the menu's level change animation.
	TransitionFrames float64
}

// DefaultTransitionFrames is the menu animation length in ticks.
const DefaultTransitionFrames = 12

// Game owns the levels and the active state for one session. Step, Draw,
// Close and Reload may be called from different goroutines.
type Game struct {
	mu sync.Mutex

	draw     core.Drawer
	font     core.Font
	audio    core.Audio
	store    core.ScoreStore
	log      *log.Logger
	renderer *render.Renderer

	levels   []level.Level
	pending  []level.Level // Reloaded levels waiting for the menu
	selected int
	opts     sim.Options
	seed     int64
	watcher  *level.Watcher
	levelDir string
	prepare  func([]level.Level) []level.Level

	transitionFrames float64

	state    State
	prevHeld core.Buttons
	fps      float64
	running  bool
}

// New creates a Game positioned on the menu. The menu is entered on the first
// Step.
func New(d Deps) (*Game, error) {
	if d.Drawer == nil {
		return nil, errors.New("state: drawer is required")
	}
	if len(d.Levels) == 0 {
		return nil, fmt.Errorf("state: no levels: %w", level.ErrConfiguration)
	}
	if d.Font == nil {
		d.Font = core.NopFont{}
	}
	if d.Audio == nil {
		d.Audio = core.NopAudio{}
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.Options.Metrics.RenderDistance <= 0 {
		d.Options = sim.DefaultOptions()
	}
	if d.Options.Logger == nil {
		d.Options.Logger = d.Logger
	}
	if d.TransitionFrames <= 0 {
		d.TransitionFrames = DefaultTransitionFrames
	}

	g := &Game{
		draw:             d.Drawer,
		font:             d.Font,
		audio:            d.Audio,
		store:            d.Store,
		log:              d.Logger,
		renderer:         render.NewRenderer(),
		levels:           d.Levels,
		opts:             d.Options,
		seed:             d.Seed,
		watcher:          d.Watcher,
		levelDir:         d.LevelDir,
		prepare:          d.Prepare,
		transitionFrames: d.TransitionFrames,
		fps:              core.NominalTickRate,
	}
	g.state = NewMenu(g)
	return g, nil
}

// Step feeds one frame of held buttons and dilation to the active state and
// applies the transition it returns. It reports false once the game quit.
func (g *Game) Step(held core.Buttons, dilation float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil {
		return false
	}
	if !g.running {
		g.running = true
		g.state.Enter()
	}
	g.pollWatcher()
	g.applyReload()
	g.trackFPS(dilation)

	in := core.NextInput(g.prevHeld, held)
	g.prevHeld = held

	next := g.state.Update(in, dilation)
	switch {
	case next == nil:
		g.log.Debug("quit", "from", stateName(g.state))
		g.state.Exit()
		g.state = nil
		return false
	case next != g.state:
		g.log.Debug("transition", "from", stateName(g.state), "to", stateName(next))
		g.state.Exit()
		g.state = next
		g.state.Enter()
	}
	return true
}

// Draw renders the active state.
func (g *Game) Draw() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == nil {
		return
	}
	g.state.DrawTop()
	g.state.DrawBot()
}

// Run drives the game from a platform until it quits or the platform stops.
func (g *Game) Run(p core.Platform) {
	for p.Loop() {
		if !g.Step(p.Pressed(), p.Dilation()) {
			break
		}
		p.ScreenBegin()
		g.Draw()
		p.ScreenFinalize()
	}
	g.Close()
}

// Close exits the active state so its teardown runs, for example when the
// platform shuts down mid-run. It also stops the level watcher.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != nil && g.running {
		g.state.Exit()
	}
	g.state = nil
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close level watcher", "err", err)
		}
		g.watcher = nil
	}
}

// State returns the active state, nil after quitting.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Levels returns the playable levels.
func (g *Game) Levels() []level.Level {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels
}

// FPS returns the smoothed frame rate.
func (g *Game) FPS() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fps
}

// Reload replaces the level list. It takes effect the next time the menu is
// active so a running level is never swapped out.
func (g *Game) Reload(levels []level.Level) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reload(levels)
}

func (g *Game) reload(levels []level.Level) {
	if len(levels) == 0 {
		g.log.Warn("ignoring reload without levels")
		return
	}
	g.pending = levels
}

func (g *Game) applyReload() {
	if g.pending == nil {
		return
	}
	m, ok := g.state.(*Menu)
	if !ok {
		return
	}
	g.levels = g.pending
	g.pending = nil
	g.selected = core.Clamp(g.selected, 0, len(g.levels)-1)
	m.reset()
	g.log.Info("levels reloaded", "count", len(g.levels))
}

func (g *Game) pollWatcher() {
	if g.watcher == nil || !g.watcher.Changed() {
		return
	}
	levels, err := level.LoadWithUser(g.levelDir, func(path string, err error) {
		g.log.Warn("skipping level file", "path", path, "err", err)
	})
	if err != nil {
		g.log.Error("reload levels", "err", err)
		return
	}
	if g.prepare != nil {
		levels = g.prepare(levels)
	}
	g.reload(levels)
}

func (g *Game) trackFPS(dilation float64) {
	if dilation <= 0 {
		return
	}
	g.fps += (core.NominalTickRate/dilation - g.fps) * 0.1
}

// newRand returns the pattern source for one run.
func (g *Game) newRand() *rand.Rand {
	seed := g.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.NewTwister(seed)
}

// bestTime reads the stored best for a level, treating store failures as a
// missing record.
func (g *Game) bestTime(id string) int {
	if g.store == nil {
		return 0
	}
	best, err := g.store.BestTime(id)
	if err != nil {
		g.log.Warn("read best time", "level", id, "err", err)
		return 0
	}
	return best
}

func (g *Game) saveTime(id string, score int) {
	if g.store == nil {
		return
	}
	if err := g.store.SaveTime(id, score); err != nil {
		g.log.Warn("save time", "level", id, "err", err)
	}
}

func stateName(s State) string {
	switch s.(type) {
	case *Menu:
		return "menu"
	case *Play:
		return "play"
	case *GameOver:
		return "gameover"
	default:
		return fmt.Sprintf("%T", s)
	}
}
