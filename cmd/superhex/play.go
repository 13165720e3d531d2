package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/superhex/internal/audio"
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/platform/tui"
	"github.com/vovakirdan/superhex/internal/state"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal. Walls are drawn with colored
half blocks, so a truecolor terminal looks best.

Controls:
  Left/A, Right/D  - Rotate
  Enter/Space      - Select level / start
  Esc/B            - Back
  Q/Ctrl+C         - Quit

Logs are written to ~/.superhex/superhex.log.

Examples:
  superhex play
  superhex play --mode hyper
  superhex play --difficulty easy --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "superhex")
	if err != nil {
		return err
	}

	a, err := openApp(logger)
	if err != nil {
		return err
	}
	defer a.Close()

	// Get terminal size early so the first frame fits
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	audioCfg := a.Config.Audio
	if flagMute {
		audioCfg.Enabled = false
	}
	sound := audio.Open(audioCfg, logger)
	if p, ok := sound.(*audio.Player); ok {
		defer p.Close()
	}

	model, err := tui.NewModel(tui.OptionsFor(a, width, height), func(d core.Drawer, f core.Font) (*state.Game, error) {
		return a.NewGame(d, f, sound, nil)
	})
	if err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}

	logger.Info("starting", "mode", a.Mode.ID(), "levels", len(a.Levels), "size", fmt.Sprintf("%dx%d", width, height))
	return tui.Run(model)
}
