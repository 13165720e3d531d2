// superhex is a rotation-based arcade game: dodge the walls closing in on the
// central polygon by orbiting it.
//
// Usage:
//
//	superhex play            - Play in the terminal
//	superhex desktop         - Play in a window
//	superhex serve           - Start SSH server for remote play
//	superhex levels          - List available levels
//	superhex modes           - List game modes
//	superhex scores [level]  - Show best times
//	superhex check <file>... - Validate level files
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible patterns
//	--db <path>         - Set database path (default: ~/.superhex/scores.db)
//	--config <path>     - Custom config YAML
//	--levels <dir>      - Extra level directory (default: ~/.superhex/levels)
//	--mode <id>         - Game mode (classic, hyper)
//	--difficulty <name> - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/superhex/internal/app"

	// Import modes to register them
	_ "github.com/vovakirdan/superhex/internal/modes"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelDir   string
	flagMode       string
	flagDifficulty string
	flagLogLevel   string
	flagWatch      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if app.IsConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "superhex",
	Short: "Superhex - dodge the hexagon",
	Long: `Superhex is a rotation-based arcade game. Walls close in on a
spinning polygon; orbit it with the cursor and survive as long as you can.

Available commands:
  play     - Play in the terminal
  desktop  - Play in a window
  serve    - Start SSH server for remote play
  levels   - List available levels
  modes    - List game modes
  scores   - View best times
  check    - Validate level files

Examples:
  superhex play
  superhex play --mode hyper --difficulty hard
  superhex desktop --fps 120
  superhex serve --ssh :2222
  superhex check ./levels/*.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.superhex/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "levels", "~/.superhex/levels", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "classic", "Game mode")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagWatch, "watch", false, "Reload the level directory when its files change")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.superhex/superhex.log for appending. Terminal play
// cannot log to stderr without tearing the frame.
func openLogFile() (*os.File, error) {
	dir := app.DefaultDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "superhex.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// openApp builds the shared session setup from the global flags.
func openApp(logger *log.Logger) (*app.App, error) {
	a, err := app.Open(app.Options{
		ConfigPath: flagConfig,
		LevelDir:   flagLevelDir,
		DBPath:     flagDBPath,
		Mode:       flagMode,
		Difficulty: flagDifficulty,
		Seed:       flagSeed,
		Watch:      flagWatch,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	if flagFPS > 0 {
		a.Config.Game.TickRate = flagFPS
	}
	return a, nil
}
