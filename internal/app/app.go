// Package app assembles a playable session from configuration, level files,
// the selected mode and the score database. Every platform (terminal, SSH,
// desktop) builds its Game through it.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/superhex/internal/config"
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/registry"
	"github.com/vovakirdan/superhex/internal/sim"
	"github.com/vovakirdan/superhex/internal/state"
	"github.com/vovakirdan/superhex/internal/storage"
)

// Options select what a session is built from.
type Options struct {
	ConfigPath string // Custom config file, empty for the search order
	LevelDir   string // Directory with extra level files, empty for none
	DBPath     string // Score database, empty to run without one
	Mode       string // Registered mode ID, empty for classic
	Difficulty string // Preset name, empty to keep the config's
	Seed       int64  // Pattern seed, 0 for a time-based seed
	Watch      bool   // Reload LevelDir when its files change
	Logger     *log.Logger
}

// App holds everything shared by the Games of one process.
type App struct {
	Config config.Config
	Mode   registry.Mode
	Levels []level.Level
	Store  *storage.Store // nil when the database could not be opened

	db       *storage.Store // Connection owner behind the Store view
	log      *log.Logger
	seed     int64
	levelDir string
	watch    bool
}

// Open loads config, levels and the score database. A database that cannot
// be opened is logged and the session runs without persistence.
func Open(o Options) (*App, error) {
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.Difficulty != "" {
		preset, ok := config.ParsePreset(o.Difficulty)
		if !ok {
			return nil, fmt.Errorf("app: unknown difficulty %q: %w", o.Difficulty, level.ErrConfiguration)
		}
		config.ApplyPreset(&cfg, preset)
	}

	modeID := o.Mode
	if modeID == "" {
		modeID = storage.DefaultMode
	}
	mode, err := registry.Create(modeID)
	if err != nil {
		return nil, fmt.Errorf("app: %w: %w", err, level.ErrConfiguration)
	}

	levels, err := level.LoadWithUser(expandHome(o.LevelDir), func(path string, err error) {
		logger.Warn("skipping level file", "path", path, "err", err)
	})
	if err != nil {
		return nil, err
	}
	levels = mode.Levels(levels)
	if len(levels) == 0 {
		return nil, fmt.Errorf("app: mode %s has no levels: %w", mode.ID(), level.ErrConfiguration)
	}

	a := &App{
		Config:   cfg,
		Mode:     mode,
		Levels:   levels,
		log:      logger,
		seed:     o.Seed,
		levelDir: expandHome(o.LevelDir),
		watch:    o.Watch,
	}

	if o.DBPath != "" {
		store, err := storage.Open(o.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "path", o.DBPath, "err", err)
		} else {
			a.db = store
			a.Store = store.WithMode(mode.ID())
		}
	}
	return a, nil
}

// SimOptions returns the simulation options for the configured mode and
// difficulty.
func (a *App) SimOptions() sim.Options {
	opts := sim.DefaultOptions()
	if a.Config.Game.Capacity > 0 {
		opts.Capacity = a.Config.Game.Capacity
	}
	opts.Strict = a.Runtime().Debug
	opts.Logger = a.log

	dm := config.NewDifficultyManager(a.Config.Difficulty)
	opts.RotateScale = dm.RotationScale()
	if dm.IsEnabled() {
		opts.Ramp = dm.WallScale
	} else {
		opts.WallScale = dm.WallScale(0)
	}
	a.Mode.Configure(&opts)
	return opts
}

// NewGame builds a Game drawing through d. The logger overrides the app's
// when non-nil, which lets SSH sessions tag their lines.
func (a *App) NewGame(d core.Drawer, f core.Font, au core.Audio, logger *log.Logger) (*state.Game, error) {
	if logger == nil {
		logger = a.log
	}
	deps := state.Deps{
		Drawer:           d,
		Font:             f,
		Audio:            au,
		Logger:           logger,
		Levels:           a.Levels,
		Options:          a.SimOptions(),
		Seed:             a.Runtime().Seed,
		LevelDir:         a.levelDir,
		Prepare:          a.Mode.Levels,
		TransitionFrames: a.Config.Game.TransitionFrames,
	}
	deps.Options.Logger = logger
	if a.Store != nil {
		deps.Store = a.Store
	}
	if a.watch && a.levelDir != "" {
		w, err := level.NewWatcher(a.levelDir)
		if err != nil {
			logger.Warn("level hot reload disabled", "dir", a.levelDir, "err", err)
		} else {
			deps.Watcher = w
		}
	}
	g, err := state.New(deps)
	if err != nil && deps.Watcher != nil {
		_ = deps.Watcher.Close()
	}
	return g, err
}

// Runtime returns the startup parameters shared by the platforms. The screen
// size is the design resolution; windowed platforms override it.
func (a *App) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = a.TickRate()
	rc.Seed = a.seed
	rc.Debug = a.Config.Game.Strict
	return rc
}

// TickRate returns the configured frame rate, falling back to 60.
func (a *App) TickRate() int {
	if a.Config.Game.TickRate <= 0 {
		return core.NominalTickRate
	}
	return a.Config.Game.TickRate
}

// Close releases the score database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// DefaultDir returns ~/.superhex, the home of the database, logs and user
// configs.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".superhex"
	}
	return filepath.Join(home, ".superhex")
}

// IsConfigError reports whether err comes from bad user input rather than
// the environment.
func IsConfigError(err error) bool {
	return errors.Is(err, level.ErrConfiguration)
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
