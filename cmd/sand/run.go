package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/render"
	"github.com/vovakirdan/tui-sand/internal/runner"
	"github.com/vovakirdan/tui-sand/internal/scenario"
	"github.com/vovakirdan/tui-sand/internal/sim"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

var (
	flagWidth   int
	flagHeight  int
	flagTheme   string
	flagProfile string
	flagASCII   bool
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a scenario",
	Long: `Run a scenario in the terminal.

The grid fills the terminal: one column per cell and two cells per row.
Use --width and --height for a fixed size.

Controls:
  Space/P    - Pause
  N          - Single step while paused
  R          - Reset with a new seed
  Tab        - Next scenario
  Q/Ctrl+C   - Quit

With --no-render or --debug the simulation runs headless and logs stats.
In debug mode --profile writes a CPU profile.

Examples:
  sand run
  sand run rain
  sand run pool --width 120 --height 60
  sand run hills --no-render --duration 1000 --ascii
  sand run hills --debug --duration 2000 --profile cpu.prof`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagWidth, "width", 0, "Grid width (0 = terminal width)")
	runCmd.Flags().IntVar(&flagHeight, "height", 0, "Grid height (0 = twice the terminal height)")
	runCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, mono")
	runCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a CPU profile to this file (debug mode)")
	runCmd.Flags().BoolVar(&flagASCII, "ascii", false, "Print the final grid as ASCII (headless)")
}

func runRun(cmd *cobra.Command, args []string) {
	cfg := mustSettings(cmd)
	if cmd.Flags().Changed("width") {
		cfg.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = flagHeight
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = flagTheme
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	id := cfg.Scenario
	if len(args) > 0 {
		id = args[0]
	}

	all := loadScenarios(cfg)
	start := scenario.Index(all, id)
	if start < 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'sand list' to see available scenarios.")
		os.Exit(1)
	}
	theme := mustTheme(cfg)

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	if cfg.Headless() {
		if err := runHeadless(cfg, all[start], store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runErr := tui.Run(tui.Options{
		Scenarios: all,
		Start:     start,
		Config:    terminalConfig(cfg),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Theme:     theme,
		Store:     store,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", runErr)
		os.Exit(1)
	}
}

// runHeadless steps the scenario without a display until the duration is
// reached or the process is interrupted.
func runHeadless(cfg config.SimConfig, s scenario.Scenario, store *storage.Store) error {
	logger := newLogger("sand", cfg.Debug)

	rc := terminalConfig(cfg)
	w, h := rc.GridSize(0)
	if cfg.Width > 0 {
		w = cfg.Width
	}
	if cfg.Height > 0 {
		h = cfg.Height
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := s.Build(w, h, sim.WithSeed(seed))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := runner.Options{
		TickRate:   cfg.TickRate,
		Duration:   cfg.Duration,
		StatsEvery: cfg.StatsEvery,
		Logger:     logger,
	}
	if !cfg.Debug {
		// Periodic stats are debug output.
		opts.StatsEvery = 0
	}

	logger.Info("running headless",
		"scenario", s.ID,
		"width", g.Width(),
		"height", g.Height(),
		"seed", seed,
	)

	var sum runner.Summary
	run := func() { sum = runner.Run(ctx, g, opts) }
	if cfg.Debug && flagProfile != "" {
		if err := runner.Profile(flagProfile, run); err != nil {
			return err
		}
		logger.Info("wrote CPU profile", "path", flagProfile)
	} else {
		run()
	}

	logger.Info("summary",
		"ticks", sum.Ticks,
		"moves", sum.Moves,
		"elapsed", sum.Elapsed.Round(time.Millisecond),
		"tps", fmt.Sprintf("%.1f", sum.TicksPerSecond()),
		"settled", sum.Settled,
	)

	if store != nil && sum.Ticks > 0 {
		if _, err := store.SaveRun(storage.RunRecord{
			Scenario:   s.ID,
			Seed:       seed,
			Width:      g.Width(),
			Height:     g.Height(),
			Ticks:      int64(sum.Ticks),
			Moves:      int64(sum.Moves),
			DurationMS: sum.Elapsed.Milliseconds(),
		}); err != nil {
			logger.Warn("could not save run", "error", err)
		}
	}

	if flagASCII {
		fmt.Println(render.ASCII(g))
	}
	return nil
}
