package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/superhex/internal/level"
	"github.com/vovakirdan/superhex/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels merged with the ones found in --levels,
as played in the selected --mode.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Args:  cobra.NoArgs,
	Run:   runModes,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Long: `Parse and validate level files without playing them. Prints one
line per level and exits non-zero when any file is invalid.

Examples:
  superhex check ./levels/spiral.yaml
  superhex check ~/.superhex/levels/*.yml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runLevels(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "superhex")
	if err != nil {
		return err
	}
	flagDBPath = "" // listing needs no database
	a, err := openApp(logger)
	if err != nil {
		return err
	}
	defer a.Close()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range a.Levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("Levels (%s):\n\n", a.Mode.Title())
	fmt.Printf("  %-*s  %-16s  %-8s  %5s  %8s  %s\n", maxIDLen, "ID", "Name", "Diff", "Sides", "Patterns", "Source")
	fmt.Printf("  %-*s  %-16s  %-8s  %5s  %8s  %s\n", maxIDLen, "--", "----", "----", "-----", "--------", "------")
	for _, l := range a.Levels {
		source := l.Source
		if source == "" {
			source = "built-in"
		}
		sides := fmt.Sprintf("%d", l.Sides)
		if l.SidesMin != l.SidesMax {
			sides = fmt.Sprintf("%d-%d", l.SidesMin, l.SidesMax)
		}
		fmt.Printf("  %-*s  %-16s  %-8s  %5s  %8d  %s\n", maxIDLen, l.ID, l.Name, l.Difficulty, sides, len(l.Patterns), source)
	}

	fmt.Println()
	fmt.Println("Run 'superhex play' to play them.")
	return nil
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()
	for _, m := range modes {
		fmt.Printf("  %-10s  %s\n", m.ID, m.Title)
	}
	fmt.Println()
	fmt.Println("Run 'superhex play --mode <id>' to play a mode.")
}

func runCheck(_ *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "check"})
	loader := level.NewLoader("")

	failed := 0
	for _, path := range args {
		levels, err := loader.LoadFile(path)
		if err != nil {
			failed++
			logger.Error("invalid", "file", path, "err", err)
			continue
		}
		for _, l := range levels {
			if err := l.Validate(); err != nil {
				failed++
				var ve level.ValidationError
				if errors.As(err, &ve) {
					logger.Error("invalid", "file", path, "level", ve.Level, "code", ve.Code, "msg", ve.Message)
				} else {
					logger.Error("invalid", "file", path, "level", l.ID, "err", err)
				}
				continue
			}
			fmt.Printf("ok  %s  %s (%d patterns, depth %.0f)\n", path, l.ID, len(l.Patterns), l.MaxPatternDepth())
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d invalid level(s): %w", failed, level.ErrConfiguration)
	}
	return nil
}
