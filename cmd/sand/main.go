// sand is a falling sand simulator for the terminal.
//
// Usage:
//
//	sand run [scenario]   - Run a scenario (default: hills)
//	sand menu             - Pick scenarios interactively
//	sand list             - List available scenarios
//	sand runs [scenario]  - Show run history
//	sand serve            - Start SSH server, one simulation per session
//	sand stream           - Stream one simulation to browsers over websockets
//
// Global flags:
//
//	--fps, -r <rate>       - Refresh rate in ticks per second (default: 60)
//	--duration, -d <ticks> - Ticks to run, 0 = forever
//	--no-render, -n        - Run without drawing frames
//	--debug, -x            - Run headless with debug logging
//	--seed <value>         - RNG seed for reproducible runs
//	--config <path>        - Config file (default search: ~/.sand/config.yaml, ./configs/sand.yaml)
//	--db <path>            - Run history database (default: ~/.sand/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/render"
	"github.com/vovakirdan/tui-sand/internal/scenario"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDuration int
	flagNoRender bool
	flagDebug    bool
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sand",
	Short: "Falling sand simulator for the terminal",
	Long: `sand is a cellular-automaton falling sand simulator. Sand piles up,
water flows and levels out, rock and glass stay put.

Available commands:
  run      - Run a scenario
  menu     - Interactive scenario picker
  list     - Show all available scenarios
  runs     - View run history
  serve    - Start SSH server for remote viewing
  stream   - Stream a simulation to browsers

Examples:
  sand run
  sand run rain --fps 30
  sand run pool --no-render --duration 500
  sand run hills --debug --profile cpu.prof
  sand serve --ssh :2222
  sand stream --http :8080 pool`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&flagFPS, "fps", "r", 60, "Refresh rate in ticks per second (0 = unpaced, headless only)")
	pf.IntVarP(&flagDuration, "duration", "d", 0, "Ticks to run (0 = forever)")
	pf.BoolVarP(&flagNoRender, "no-render", "n", false, "Run without rendering")
	pf.BoolVarP(&flagDebug, "debug", "x", false, "Run headless with debug logging")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagDBPath, "db", "", "Path to run history database (default ~/.sand/runs.db)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
}

// loadSettings loads the config file and applies flags the user set.
func loadSettings(cmd *cobra.Command) (config.SimConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("duration") {
		cfg.Duration = flagDuration
	}
	if flags.Changed("no-render") {
		cfg.Render = !flagNoRender
	}
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}

	return cfg, cfg.Validate()
}

// mustSettings is loadSettings that exits on error.
func mustSettings(cmd *cobra.Command) config.SimConfig {
	cfg, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger returns a stderr logger, at debug level in debug mode.
func newLogger(prefix string, debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig(cfg config.SimConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.TickRate
	rc.Seed = cfg.Seed
	rc.Duration = cfg.Duration
	return rc
}

// loadScenarios returns every scenario or exits.
func loadScenarios(cfg config.SimConfig) []scenario.Scenario {
	all, err := scenario.All(cfg.ScenarioDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return all
}

// mustTheme resolves the configured theme or exits.
func mustTheme(cfg config.SimConfig) render.Theme {
	theme, err := render.ThemeByName(cfg.Theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return theme
}

// openStore opens run history, continuing without it on failure.
func openStore(cfg config.SimConfig) *storage.Store {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}
