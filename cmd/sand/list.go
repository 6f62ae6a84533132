package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Long: `Display all built-in scenarios and any YAML scenarios found in the
configured scenario directory.`,
	Run: runList,
}

func runList(cmd *cobra.Command, _ []string) {
	cfg := mustSettings(cmd)

	infos, err := scenario.Catalog(cfg.ScenarioDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	for _, info := range infos {
		fmt.Printf("  %-12s  %-20s  %s\n", info.ID, info.Name, info.Source)
		if info.Description != "" {
			fmt.Printf("  %-12s  %s\n", "", info.Description)
		}
	}

	fmt.Println()
	fmt.Println("Run a scenario with: sand run <scenario>")
}
