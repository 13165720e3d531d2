package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/superhex/internal/audio"
	"github.com/vovakirdan/superhex/internal/core"
	"github.com/vovakirdan/superhex/internal/platform/desktop"
	"github.com/vovakirdan/superhex/internal/state"
)

var (
	flagWidth  int
	flagHeight int
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Play in a window",
	Long: `Start the game in a desktop window.

Controls:
  Left/A, Right/D  - Rotate
  Enter/Space      - Select level / start
  Esc/Backspace    - Back
  Q                - Quit

Examples:
  superhex desktop
  superhex desktop --width 1280 --height 720`,
	Args: cobra.NoArgs,
	RunE: runDesktop,
}

func init() {
	desktopCmd.Flags().IntVar(&flagWidth, "width", 800, "Window width")
	desktopCmd.Flags().IntVar(&flagHeight, "height", 480, "Window height")
	desktopCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

func runDesktop(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "superhex")
	if err != nil {
		return err
	}

	a, err := openApp(logger)
	if err != nil {
		return err
	}
	defer a.Close()

	audioCfg := a.Config.Audio
	if flagMute {
		audioCfg.Enabled = false
	}
	sound := audio.Open(audioCfg, logger)
	if p, ok := sound.(*audio.Player); ok {
		defer p.Close()
	}

	// Ctrl+C in the launching terminal ends the loop at the next frame
	flag := &core.RunFlag{}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		if _, ok := <-sig; ok {
			flag.Stop()
		}
	}()

	rc := a.Runtime()
	rc.ScreenW, rc.ScreenH = flagWidth, flagHeight
	w, err := desktop.NewWindow(desktop.OptionsFor("Superhex", rc), flag, func(d core.Drawer, f core.Font) (*state.Game, error) {
		return a.NewGame(d, f, sound, nil)
	})
	if err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}

	logger.Info("starting", "mode", a.Mode.ID(), "levels", len(a.Levels))
	return w.Run()
}
