package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenarios from an interactive menu",
	Long: `Open the scenario picker. Selecting a scenario starts it; Esc in a
running simulation returns to the menu.

Examples:
  sand menu
  sand menu --fps 30 --theme mono`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, mono")
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg := mustSettings(cmd)
	if cmd.Flags().Changed("theme") {
		cfg.Theme = flagTheme
	}
	theme := mustTheme(cfg)

	all := loadScenarios(cfg)
	if len(all) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no scenarios available")
		os.Exit(1)
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	err := tui.RunSession(tui.SessionOptions{
		Scenarios: all,
		Config:    terminalConfig(cfg),
		Theme:     theme,
		Store:     store,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
		os.Exit(1)
	}
}
