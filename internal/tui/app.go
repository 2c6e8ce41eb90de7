// Package tui provides the interactive Bubble Tea dashboard for revcalc.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"
	"github.com/theirongolddev/revcalc/internal/tui/components"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabMonthly
	tabDaily
	tabParameters
	tabLokalAI
	tabLiveAudio
)

// ScenariosLoadedMsg is sent when the scenario catalog has been read.
type ScenariosLoadedMsg struct {
	Scenarios []model.Scenario
	Err       error
}

// ScenarioSavedMsg is sent when the edited scenario has been stored.
type ScenarioSavedMsg struct {
	Scenario model.Scenario
	Err      error
}

// Options configures a new App.
type Options struct {
	Config     config.Config
	Scenario   model.Scenario
	Catalog    pipeline.Catalog
	Clamp      bool
	StartMonth time.Month
	// NeedSetup shows the first-run form before the dashboard.
	NeedSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	catalog pipeline.Catalog

	// Inputs
	scenario   model.Scenario
	scenarios  []model.Scenario
	clamp      bool
	startMonth time.Month

	// Derived on every recompute
	report      *pipeline.Report
	calcErr     error
	comparison  []pipeline.ComparisonRow
	lokalai     *revenue.LokalAIProjection
	lokalaiErr  error
	liveParams  revenue.LiveAudioParams
	liveAudio   *revenue.LiveAudioResults
	liveErr     error
	computeTime time.Duration

	loaded  bool
	loadErr error
	flash   string

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	dailyMonth int

	params paramsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:        opts.Config,
		catalog:    opts.Catalog,
		scenario:   opts.Scenario,
		clamp:      opts.Clamp,
		startMonth: opts.StartMonth,
		liveParams: config.LiveAudio(opts.Config),
		needSetup:  opts.NeedSetup,
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadScenariosCmd(a.catalog),
		a.spinner.Tick,
	)
}

func loadScenariosCmd(cat pipeline.Catalog) tea.Cmd {
	return func() tea.Msg {
		list, err := cat.List()
		return ScenariosLoadedMsg{Scenarios: list, Err: err}
	}
}

// recompute runs every calculator for the current inputs.
func (a *App) recompute() {
	start := time.Now()

	a.report, a.calcErr = pipeline.Run(a.scenario, pipeline.Options{
		Clamp:        a.clamp,
		StartMonth:   a.startMonth,
		IncludeDaily: true,
	})
	a.comparison = pipeline.Compare(a.scenario, a.scenarios)

	years := a.cfg.Projection.Years
	if years < 1 {
		years = config.DefaultConfig().Projection.Years
	}
	lp, err := revenue.ProjectLokalAI(config.Tiers(a.cfg), years)
	a.lokalai, a.lokalaiErr = &lp, err
	if err != nil {
		a.lokalai = nil
	}

	la, err := revenue.ComputeLiveAudio(a.liveParams)
	a.liveAudio, a.liveErr = &la, err
	if err != nil {
		a.liveAudio = nil
	}

	a.computeTime = time.Since(start)
}

// selectScenario switches to the scenario offset positions away in the
// catalog, wrapping around.
func (a *App) selectScenario(offset int) {
	if len(a.scenarios) == 0 {
		return
	}
	idx := 0
	for i, s := range a.scenarios {
		if strings.EqualFold(s.Name, a.scenario.Name) {
			idx = i
			break
		}
	}
	n := len(a.scenarios)
	a.scenario = a.scenarios[((idx+offset)%n+n)%n]
	a.flash = ""
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case ScenariosLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.scenarios = msg.Scenarios
		a.recompute()

		if a.needSetup {
			a.setupForm = newSetupForm(a.scenarioNames(), &a.setupVals, a.cfg)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ScenarioSavedMsg:
		if msg.Err != nil {
			a.params.saveErr = msg.Err
			return a, nil
		}
		a.scenario = msg.Scenario
		a.params.edited = false
		a.flash = fmt.Sprintf("saved %q", msg.Scenario.Name)
		return a, loadScenariosCmd(a.catalog)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.params.editing {
		var cmd tea.Cmd
		a.params.input, cmd = a.params.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Parameter editing owns the keyboard while the text input is open
	if a.activeTab == tabParameters && a.params.editing {
		return a.updateParamInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabParameters:
		switch key {
		case "j", "down":
			a.params.cursor = min(a.params.cursor+1, len(paramFields)-1)
			return a, nil
		case "k", "up":
			a.params.cursor = max(a.params.cursor-1, 0)
			return a, nil
		case "enter":
			return a.paramStartEdit()
		case "w":
			return a, a.saveScenarioCmd()
		}
	case tabDaily:
		switch key {
		case "left", "h":
			a.dailyMonth = max(a.dailyMonth-1, 0)
			return a, nil
		case "right", "l":
			a.dailyMonth = min(a.dailyMonth+1, 11)
			return a, nil
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "c":
		a.clamp = !a.clamp
		a.recompute()
		return a, nil
	case "n":
		a.selectScenario(1)
		return a, nil
	case "N":
		a.selectScenario(-1)
		return a, nil
	case "r":
		return a, loadScenariosCmd(a.catalog)
	case "tab", "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab", "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}

	if runes := []rune(key); len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabParameters:
			if !a.params.editing {
				a.params.cursor = max(a.params.cursor-1, 0)
			}
		case tabDaily:
			a.dailyMonth = max(a.dailyMonth-1, 0)
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabParameters:
			if !a.params.editing {
				a.params.cursor = min(a.params.cursor+1, len(paramFields)-1)
			}
		case tabDaily:
			a.dailyMonth = min(a.dailyMonth+1, 11)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) scenarioNames() []string {
	names := make([]string, len(a.scenarios))
	for i, s := range a.scenarios {
		names[i] = s.Name
	}
	return names
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  revcalc needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ revcalc") + subtitleStyle.Render(" · Revenue & ROI") + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" Loading scenarios...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o m d p l a", "Jump to tab"},
			{"tab ⇧tab", "Next / Previous tab"},
			{"← →", "Change month (Daily tab)"},
			{"j k", "Move between parameters"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"n N", "Next / Previous scenario"},
			{"c", "Toggle clamping of negative months"},
			{"Enter", "Edit parameter"},
			{"w", "Save edited scenario"},
			{"r", "Reload scenarios"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", bind.key)), descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w, cw, h := a.width, a.contentWidth(), a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Scenario:    a.scenario.Name,
		Source:      string(a.scenario.Source),
		Clamp:       a.clamp,
		ComputeTime: a.computeTime,
		Message:     a.flash,
	})

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabMonthly:
		content = a.renderMonthlyTab(cw)
	case tabDaily:
		content = a.renderDailyTab(cw)
	case tabParameters:
		content = a.renderParamsTab(cw)
	case tabLokalAI:
		content = a.renderLokalAITab(cw)
	case tabLiveAudio:
		content = a.renderLiveAudioTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderCalcError shows why the current scenario cannot be computed.
func (a App) renderCalcError(cw int) string {
	t := theme.Active
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	body := warn.Render(a.calcErr.Error()) + "\n\n" +
		hint.Render("Fix the inputs on the Parameters tab [p] or pick another scenario [n].")
	return components.ContentCard("Cannot compute "+a.scenario.Name, body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
