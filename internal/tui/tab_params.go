package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"
	"github.com/theirongolddev/revcalc/internal/tui/components"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// paramField is one editable business input.
type paramField struct {
	label  string
	unit   string
	field  func(*revenue.Params) *float64
	format func(float64) string
}

func plainNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

var paramFields = []paramField{
	{"Call duration", "min", func(p *revenue.Params) *float64 { return &p.CallDurationMinutes }, plainNumber},
	{"Target volume", "calls", func(p *revenue.Params) *float64 { return &p.TargetVolume }, func(v float64) string { return cli.FormatNumber(int64(v)) }},
	{"Price per minute", "", func(p *revenue.Params) *float64 { return &p.PricePerMinute }, cli.FormatIDR},
	{"Hours per day", "h", func(p *revenue.Params) *float64 { return &p.HoursPerDay }, plainNumber},
	{"Channels", "", func(p *revenue.Params) *float64 { return &p.Channels }, plainNumber},
	{"One-time purchase", "", func(p *revenue.Params) *float64 { return &p.OneTimePurchaseCost }, cli.FormatIDR},
	{"Operational cost", "per period", func(p *revenue.Params) *float64 { return &p.OperationalCostPerPeriod }, cli.FormatIDR},
	{"Tax rate", "%", func(p *revenue.Params) *float64 { return &p.TaxRatePercent }, plainNumber},
}

// paramsState tracks the parameters tab.
type paramsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	edited  bool  // scenario differs from its catalog entry
	saveErr error // last parse, validation or store error
}

var errNoStore = errors.New("scenario store is unavailable")

func newParamInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 24
	return ti
}

func (a App) paramStartEdit() (tea.Model, tea.Cmd) {
	f := paramFields[a.params.cursor]
	p := a.scenario.Params

	ti := newParamInput()
	ti.Placeholder = plainNumber(*f.field(&p))
	ti.SetValue(plainNumber(*f.field(&p)))
	ti.Focus()

	a.params.editing = true
	a.params.saveErr = nil
	a.params.input = ti
	return a, textinput.Blink
}

func (a App) updateParamInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.params.editing = false
		a.params.saveErr = a.applyParam(a.params.input.Value())
		return a, nil
	case "esc":
		a.params.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.params.input, cmd = a.params.input.Update(msg)
	return a, cmd
}

// applyParam parses raw into the field under the cursor. Values that fail
// validation are rejected and the scenario is left unchanged.
func (a *App) applyParam(raw string) error {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}

	p := a.scenario.Params
	*paramFields[a.params.cursor].field(&p) = v
	if err := p.Validate(); err != nil {
		return err
	}

	a.scenario.Params = p
	a.scenario.Source = model.SourceCustom
	a.scenario.ID = ""
	a.params.edited = true
	a.flash = ""
	a.recompute()
	return nil
}

func (a App) saveScenarioCmd() tea.Cmd {
	st := a.catalog.Store
	sc := a.scenario
	return func() tea.Msg {
		if st == nil {
			return ScenarioSavedMsg{Err: errNoStore}
		}
		saved, err := st.SaveScenario(sc)
		return ScenarioSavedMsg{Scenario: saved, Err: err}
	}
}

func (a App) renderParamsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	unitStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	p := a.scenario.Params
	innerW := components.CardInnerWidth(cw)

	var form strings.Builder
	for i, f := range paramFields {
		label := fmt.Sprintf("%-20s ", f.label+":")
		value := f.format(*f.field(&p))

		if a.params.editing && i == a.params.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(label))
			form.WriteString(a.params.input.View())
			form.WriteString("\n")
			continue
		}

		if i == a.params.cursor {
			marker := markerStyle.Render("▸ ")
			lbl := selectedLabelStyle.Render(label)
			val := selectedStyle.Render(strings.TrimSpace(value + " " + f.unit))
			form.WriteString(marker + lbl + val)
			used := lipgloss.Width(marker) + lipgloss.Width(lbl) + lipgloss.Width(val)
			if pad := innerW - used; pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			form.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			form.WriteString(labelStyle.Render(label))
			form.WriteString(valueStyle.Render(value))
			if f.unit != "" {
				form.WriteString(unitStyle.Render(" " + f.unit))
			}
		}
		form.WriteString("\n")
	}

	switch {
	case a.params.saveErr != nil:
		form.WriteString("\n")
		form.WriteString(warnStyle.Render(a.params.saveErr.Error()))
		form.WriteString("\n")
	case a.flash != "":
		form.WriteString("\n")
		form.WriteString(greenStyle.Render(a.flash))
		form.WriteString("\n")
	}

	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel  [w] save scenario"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Scenario:     ") + valueStyle.Render(a.scenario.Name) + "\n")
	info.WriteString(labelStyle.Render("Source:       ") + valueStyle.Render(string(a.scenario.Source)) + "\n")
	if a.scenario.Description != "" {
		info.WriteString(labelStyle.Render("Description:  ") + valueStyle.Render(truncStr(a.scenario.Description, max(innerW-14, 10))) + "\n")
	}
	info.WriteString(labelStyle.Render("Scenarios:    ") + valueStyle.Render(strconv.Itoa(len(a.scenarios))))
	if a.params.edited {
		info.WriteString("\n" + warnStyle.Render("Edited in this session, press [w] to keep it."))
	}

	return components.ContentCard("Parameters", form.String(), cw) + "\n" +
		components.ContentCard("Scenario", info.String(), cw)
}
