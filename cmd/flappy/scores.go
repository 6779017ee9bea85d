package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse recorded runs",
	Long: `Show recorded runs in an interactive table. Tab switches between the
best and the most recent runs.

When stdout is not a terminal, or with --plain, the best runs are printed
as text instead.

Examples:
  flappy scores
  flappy scores --plain --limit 5
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores as text")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if flagClear {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	runs, err := store.TopRuns(ctx, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Flappy")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-20s  %s\n", "Rank", "Score", "Ticks", "Seed", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-20s  %s\n", "----", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-20d  %s\n", i+1, r.Score, r.Ticks, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%d runs, average %.1f, last played %s\n",
		stats.Runs, stats.Average, stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}
