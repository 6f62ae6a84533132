package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/platform/web"
	"github.com/vovakirdan/tui-sand/internal/scenario"
)

var (
	flagHTTPAddr     string
	flagStreamWidth  int
	flagStreamHeight int
)

var streamCmd = &cobra.Command{
	Use:   "stream [scenario]",
	Short: "Stream a simulation to browsers",
	Long: `Run one shared simulation and stream frames to browsers over a
websocket. Open the printed address to watch; the page can pause, resume
and reset the grid.

Examples:
  sand stream
  sand stream pool --http :9000 --width 200 --height 120`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
	streamCmd.Flags().IntVar(&flagStreamWidth, "width", 160, "Grid width")
	streamCmd.Flags().IntVar(&flagStreamHeight, "height", 90, "Grid height")
	streamCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, mono")
}

func runStream(cmd *cobra.Command, args []string) {
	settings := mustSettings(cmd)
	if cmd.Flags().Changed("theme") {
		settings.Theme = flagTheme
	}

	id := settings.Scenario
	if len(args) > 0 {
		id = args[0]
	}
	s, err := scenario.Lookup(id, settings.ScenarioDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'sand list' to see available scenarios.")
		os.Exit(1)
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.TickRate = settings.TickRate
	cfg.Scenario = s
	cfg.Width = flagStreamWidth
	cfg.Height = flagStreamHeight
	cfg.Seed = settings.Seed
	cfg.Theme = mustTheme(settings)
	cfg.Logger = newLogger("sand-web", settings.Debug)

	streamer, err := web.NewStreamer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating streamer: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Streaming %s on http://localhost:%s\n", s.ID, port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := streamer.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
