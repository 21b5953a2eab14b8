package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loop-heist/internal/platform/tui"
	"github.com/vovakirdan/loop-heist/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best-time board",
	Long: `Display the fastest full runs, one per handle.
Only runs that cleared every level without skipping are ranked.

Examples:
  heist scores
  heist scores --limit 25
  heist scores --tui`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse all records interactively")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening records database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	best, err := store.BestTimes(flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving best times: %w", err)
	}

	fmt.Println("Best Times")
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No full runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'heist play' to set the first time!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-9s  %-5s  %-8s  %s\n", "Rank", "Handle", "Time", "Loops", "Detected", "Date")
	fmt.Printf("  %-4s  %-16s  %-9s  %-5s  %-8s  %s\n", "----", "------", "----", "-----", "--------", "----")

	for i, e := range best {
		fmt.Printf("  %-4d  %-16s  %-9s  %-5d  %-8d  %s\n",
			i+1, e.Handle, formatDuration(e.Elapsed), e.Loops, e.Failures, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func formatDuration(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
