package tui

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the answers of the first-run form.
type setupValues struct {
	scenario string
	theme    string
	clamp    bool
}

// newSetupForm builds the first-run form, prefilled from cfg.
func newSetupForm(scenarios []string, vals *setupValues, cfg config.Config) *huh.Form {
	vals.scenario = config.DefaultScenarioName(cfg)
	vals.theme = cfg.Appearance.Theme
	vals.clamp = cfg.Projection.Clamp

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to revcalc").
				Description(fmt.Sprintf("%d scenarios available.\nThese choices are saved to %s.", len(scenarios), config.Path())),
			huh.NewSelect[string]().
				Title("Default scenario").
				Description("Used when --scenario is not given.").
				Options(huh.NewOptions(scenarios...)...).
				Value(&vals.scenario),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
			huh.NewConfirm().
				Title("Clamp negative months to zero?").
				Description("Months whose revenue falls below their cost share show as zero.").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.clamp),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

// applySetupValues copies the form answers into cfg.
func applySetupValues(cfg config.Config, vals setupValues) config.Config {
	if vals.scenario != "" {
		cfg.General.DefaultScenario = vals.scenario
	}
	if theme.Valid(vals.theme) {
		cfg.Appearance.Theme = vals.theme
	}
	cfg.Projection.Clamp = vals.clamp
	return cfg
}

// applySetup saves the form answers and switches the dashboard to them.
func (a *App) applySetup() {
	a.cfg = applySetupValues(a.cfg, a.setupVals)
	if err := config.Save(a.cfg); err != nil {
		a.flash = "config save failed: " + err.Error()
	} else {
		a.flash = "saved " + config.Path()
	}

	theme.SetActive(a.cfg.Appearance.Theme)
	a.clamp = a.cfg.Projection.Clamp
	for _, s := range a.scenarios {
		if s.Name == a.cfg.General.DefaultScenario {
			a.scenario = s
			break
		}
	}
	a.recompute()
}
