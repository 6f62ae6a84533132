package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/scenario"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "Show run history",
	Long: `Display recorded simulation runs.

On a terminal this opens an interactive history browser. Use --plain
(or pipe the output) for a text table.

Examples:
  sand runs
  sand runs rain --plain --limit 20
  sand runs hills --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded runs (all, or one scenario)")
}

func runRuns(cmd *cobra.Command, args []string) {
	cfg := mustSettings(cmd)

	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	infos, err := scenario.Catalog(cfg.ScenarioDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		if id == "" {
			fmt.Println("Cleared all runs.")
		} else {
			fmt.Printf("Cleared runs for %s.\n", id)
		}
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) && len(infos) > 0 {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		if id == "" {
			id = cfg.Scenario
		}
		if err := tui.RunHistory(store, infos, id, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printRuns(store, id)
}

// printRuns writes a plain table of recent runs.
func printRuns(store *storage.Store, id string) {
	var (
		runs []storage.RunRecord
		err  error
	)
	if id == "" {
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.RunsForScenario(id, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if id == "" {
		fmt.Println("Recent runs")
	} else {
		fmt.Printf("Recent runs - %s\n", id)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-10s  %-9s  %-8s  %-10s  %-8s  %s\n", "Scenario", "Size", "Ticks", "Moves", "Time", "Date")
	fmt.Printf("  %-10s  %-9s  %-8s  %-10s  %-8s  %s\n", "--------", "----", "-----", "-----", "----", "----")

	for _, r := range runs {
		size := fmt.Sprintf("%dx%d", r.Width, r.Height)
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-10s  %-9s  %-8d  %-10d  %-8s  %s\n",
			r.Scenario, size, r.Ticks, r.Moves, r.Duration().Round(100*time.Millisecond), dateStr)
	}

	if id != "" {
		if stats, err := store.ScenarioStats(id); err == nil && stats != nil {
			fmt.Println()
			fmt.Printf("Runs: %d  Avg ticks: %.0f  Max ticks: %d\n", stats.Runs, stats.AvgTicks, stats.MaxTicks)
		}
	}
}
