package cmd

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/pipeline"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Database:    %s\n", pipeline.DataPath())
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default scenario: %s\n", config.DefaultScenarioName(cfg))
	fmt.Printf("    Log level:        %s\n", config.LogLevel(cfg))
	fmt.Println()

	fmt.Println("  [Projection]")
	fmt.Printf("    Clamp negative months: %v\n", cfg.Projection.Clamp)
	fmt.Printf("    Growth per year:       %.0f%%\n", cfg.Projection.GrowthPercent)
	fmt.Printf("    Years:                 %d\n", cfg.Projection.Years)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", config.ServerAddr(cfg))
	fmt.Printf("    Poll interval: %ds\n", cfg.Server.PollIntervalSec)
	fmt.Println()

	fmt.Println("  [Export]")
	if cfg.Export.Dir != "" {
		fmt.Printf("    Directory: %s\n", cfg.Export.Dir)
	} else {
		fmt.Println("    Directory: current directory")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [LokalAI]")
	for _, t := range config.Tiers(cfg) {
		fmt.Printf("    %-8s %3.0f users\n", t.Name, t.TargetUsers)
	}
	fmt.Println()

	if len(cfg.Scenarios) > 0 {
		fmt.Println("  [Scenarios]")
		for _, s := range cfg.Scenarios {
			fmt.Printf("    %s\n", s.Name)
		}
		fmt.Println()
	}

	fmt.Println("  Run `revcalc setup` to reconfigure.")
	return nil
}
