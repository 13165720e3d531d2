package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/superhex/internal/platform/tui"
	"github.com/vovakirdan/superhex/internal/sim"
	"github.com/vovakirdan/superhex/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best times",
	Long: `Without a level, display the best time of every level played in the
selected mode. With a level, display its top 10 runs.

Examples:
  superhex scores
  superhex scores hexagon
  superhex scores --mode hyper
  superhex scores -i            # browse runs in the terminal
  superhex scores hexagon --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs interactively")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the runs of the given level")
}

func runScores(_ *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, "superhex")
	if err != nil {
		return err
	}
	a, err := openApp(logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Store == nil {
		return fmt.Errorf("cannot open scores database %s", flagDBPath)
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(a.Store, a.Levels, width, height)
	}

	if len(args) == 0 {
		return printBestTimes(a.Store)
	}

	levelID := args[0]
	if flagClear {
		if err := a.Store.ClearLevel(levelID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %s (%s)\n", levelID, a.Store.Mode())
		return nil
	}
	return printRuns(a.Store, levelID)
}

func printBestTimes(store *storage.Store) error {
	best, err := store.BestTimes()
	if err != nil {
		return err
	}

	fmt.Printf("Best Times - %s\n\n", store.Mode())
	if len(best) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-9s  %s\n", "Level", "Time", "Rank", "Date")
	fmt.Printf("  %-16s  %-8s  %-9s  %s\n", "-----", "----", "----", "----")
	for _, e := range best {
		fmt.Printf("  %-16s  %-8s  %-9s  %s\n", e.LevelID, sim.FormatTime(e.Score), sim.RankFor(e.Score).Name, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRuns(store *storage.Store, levelID string) error {
	runs, err := store.TopRuns(levelID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Top Runs - %s (%s)\n\n", levelID, store.Mode())
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'superhex play' to set the first time!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-9s  %s\n", "Rank", "Time", "Title", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %s\n", "----", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-9s  %s\n", i+1, sim.FormatTime(r.Score), sim.RankFor(r.Score).Name, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(levelID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %s  Average: %s\n", stats.Runs, sim.FormatTime(stats.Best), sim.FormatTime(int(stats.AvgScore)))
	}
	return nil
}
