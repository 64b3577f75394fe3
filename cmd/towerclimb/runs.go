package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tower-climb/internal/platform/tui"
	"github.com/vovakirdan/tower-climb/internal/storage"
)

var (
	flagRunsPlain  bool
	flagRunsLimit  int
	flagRunsRecent bool
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Show run history",
	Long: `Display the best runs for a variant, ranked by floor and then score.

In a terminal the history opens as an interactive table; use --plain (or
pipe the output) for text.

Examples:
  towerclimb runs
  towerclimb runs tower_mouse --plain
  towerclimb runs --recent --limit 5
  towerclimb runs tower --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print plain text instead of the interactive table")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show in plain output")
	runsCmd.Flags().BoolVar(&flagRunsRecent, "recent", false, "Show the latest runs instead of the best")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the variant's run history")
}

func runRuns(_ *cobra.Command, args []string) {
	gameID, err := variantArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared run history for %s.\n", gameID)
		return
	}

	if !flagRunsPlain && !flagRunsRecent && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printRuns(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
}

// printRuns writes the run history as a text table followed by totals.
func printRuns(store *storage.Store, gameID string) error {
	var runs []storage.Run
	var err error
	if flagRunsRecent {
		runs, err = store.RecentRuns(gameID, flagRunsLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagRunsLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Run History - %s\n", gameID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'towerclimb play %s' to set the first record!\n", gameID)
		return nil
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = tui.HistoryRow(i+1, r)
	}
	fmt.Print(formatTable(tui.HistoryColumns, rows))

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Best floor: %d  High score: %d  Avg floor: %.1f\n",
		stats.Runs, stats.Wins, stats.BestFloor, stats.HighScore, stats.AvgFloor)
	return nil
}

// formatTable pads each column to its widest cell.
func formatTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString(" ")
		for i, cell := range cells {
			fmt.Fprintf(&b, " %-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(header)
	dashes := make([]string, len(header))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	writeRow(dashes)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
