package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/tui"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme.SetActive(appConfig.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	sc, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	cat, done := openCatalog()
	defer done()

	start := time.Month(flagStartMonth)
	if start == 0 {
		start = time.Now().Month()
	}

	app := tui.NewApp(tui.Options{
		Config:     appConfig,
		Scenario:   sc,
		Catalog:    cat,
		Clamp:      clampEnabled(),
		StartMonth: start,
		NeedSetup:  !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
