package cmd

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	cat, done := openCatalog()
	scenarios, err := cat.List()
	done()
	if err != nil {
		return err
	}
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}

	scenario := config.DefaultScenarioName(cfg)
	themeName := cfg.Appearance.Theme
	clamp := cfg.Projection.Clamp
	logLevel := config.LogLevel(cfg)
	addr := config.ServerAddr(cfg)

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default scenario").
				Options(huh.NewOptions(names...)...).
				Value(&scenario),
			huh.NewConfirm().
				Title("Clamp negative months to zero?").
				Value(&clamp),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&logLevel),
			huh.NewInput().
				Title("Daemon listen address").
				Value(&addr).
				Validate(validateAddr),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.DefaultScenario = scenario
	cfg.General.LogLevel = logLevel
	cfg.Appearance.Theme = themeName
	cfg.Projection.Clamp = clamp
	cfg.Server.Addr = strings.TrimSpace(addr)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `revcalc setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateAddr(s string) error {
	if _, _, err := net.SplitHostPort(strings.TrimSpace(s)); err != nil {
		return errors.New("expected host:port, e.g. 127.0.0.1:8787")
	}
	return nil
}
