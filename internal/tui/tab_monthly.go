package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/tui/components"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderMonthlyTab(cw int) string {
	if a.calcErr != nil {
		return a.renderCalcError(cw)
	}

	t := theme.Active
	months := a.report.Months

	values := make([]float64, len(months))
	labels := make([]string, len(months))
	for i, m := range months {
		values[i] = m.Current
		labels[i] = m.Label
	}

	chartH := 10
	if a.isCompactLayout() {
		chartH = 6
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Current Revenue by Month",
		components.BarChart(values, labels, t.Accent, components.CardInnerWidth(cw), chartH), cw))
	b.WriteString("\n")

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	amount := func(v float64, w int) string {
		return lipgloss.NewStyle().Foreground(t.AmountColor(v)).Background(t.Surface).
			Render(fmt.Sprintf("%*s", w, cli.FormatIDRCompact(v)))
	}

	const colW = 14
	var tbl strings.Builder
	tbl.WriteString(headStyle.Render(fmt.Sprintf("%-6s %*s %*s %*s %*s %*s %*s",
		"Month", colW, "Gross", colW, "Op cost", colW, "Current", colW, "After tax", colW, "Projected", colW, "Conservative")))
	tbl.WriteString("\n")

	clamped := false
	for _, m := range months {
		label := m.Label
		if m.Clamped {
			label += "*"
			clamped = true
		}
		tbl.WriteString(labelStyle.Render(fmt.Sprintf("%-6s", label)))
		for _, v := range []float64{m.GrossShare, m.OperationalCostShare, m.Current, m.TaxedCurrent, m.Projected, m.Conservative} {
			tbl.WriteString(spaceStyle.Render(" "))
			tbl.WriteString(amount(v, colW))
		}
		tbl.WriteString("\n")
	}

	sum := a.report.Summary
	tbl.WriteString(headStyle.Render(fmt.Sprintf("%-6s %*s %*s", "Total", colW*3+2, cli.FormatIDRCompact(sum.TotalCurrent),
		colW*2+1, cli.FormatIDRCompact(sum.TotalProjected))))
	tbl.WriteString(spaceStyle.Render(" "))
	tbl.WriteString(headStyle.Render(fmt.Sprintf("%*s", colW, cli.FormatIDRCompact(sum.TotalConservative))))

	if clamped {
		tbl.WriteString("\n\n")
		tbl.WriteString(dimStyle.Render("* negative month clamped to zero  [c] toggle"))
	}

	b.WriteString(components.ContentCard("Monthly Projection", tbl.String(), cw))
	return b.String()
}
