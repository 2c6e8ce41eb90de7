package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/tui/components"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	if a.calcErr != nil {
		return a.renderCalcError(cw) + "\n" + a.renderComparisonCard(cw)
	}

	t := theme.Active
	r := a.report.Results
	sum := a.report.Summary
	var b strings.Builder

	// Row 1: headline amounts
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Gross Revenue", Value: cli.FormatIDRCompact(r.GrossRevenue), Delta: cli.FormatMinutes(r.TotalMinutes)},
		{Label: "Net Revenue", Value: cli.FormatIDRCompact(r.NetRevenue), Negative: r.NetRevenue < 0,
			Delta: "op cost " + cli.FormatIDRCompact(r.AdjustedOperationalCost)},
		{Label: "After Tax", Value: cli.FormatIDRCompact(r.AfterTaxRevenue), Negative: r.AfterTaxRevenue < 0,
			Delta: taxDelta(r.TaxAmount)},
		{Label: "ROI", Value: cli.FormatPercent(r.ROI), Negative: r.ROI < 0,
			Delta: "on " + cli.FormatIDRCompact(r.TotalInvestment)},
	}, cw))
	b.WriteString("\n")

	// Row 2: timing
	breakEven := "not within 12 months"
	if sum.BreakEvenMonth >= 0 {
		breakEven = fmt.Sprintf("month %d (%s)", sum.BreakEvenMonth+1, sum.BreakEvenLabel)
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Completion", Value: cli.FormatDays(r.CompletionDays), Delta: cli.FormatMonths(r.CompletionMonths)},
		{Label: "Daily Capacity", Value: cli.FormatMinutes(r.DailyCapacityMinutes)},
		{Label: "Avg Monthly", Value: cli.FormatIDRCompact(sum.AverageMonthly), Negative: sum.AverageMonthly < 0},
		{Label: "Break-even", Value: breakEven, Negative: sum.BreakEvenMonth < 0},
	}, cw))
	b.WriteString("\n")

	// Row 3: current-month sparkline
	current := make([]float64, len(a.report.Months))
	for i, m := range a.report.Months {
		current[i] = m.Current
	}
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	trend := components.Sparkline(current, t.Accent) + mutedStyle.Render(
		fmt.Sprintf("  12 months from %s, total %s", a.report.Months[0].Label, cli.FormatIDRCompact(sum.TotalCurrent)))
	b.WriteString(components.ContentCard("Monthly Trend", trend, cw))
	b.WriteString("\n")

	b.WriteString(a.renderComparisonCard(cw))
	return b.String()
}

func taxDelta(tax float64) string {
	if tax < 0 {
		return "tax credit " + cli.FormatIDRCompact(-tax)
	}
	return "tax " + cli.FormatIDRCompact(tax)
}

// renderComparisonCard lists every catalog scenario next to the current one.
func (a App) renderComparisonCard(cw int) string {
	t := theme.Active
	if len(a.comparison) == 0 {
		return ""
	}

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	currentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	nameW := max(innerW-4*14-10, 12)
	compact := a.isCompactLayout()

	var b strings.Builder
	if compact {
		b.WriteString(headStyle.Render(fmt.Sprintf("  %-*s %13s %9s", nameW, "Scenario", "Net", "ROI")))
	} else {
		b.WriteString(headStyle.Render(fmt.Sprintf("  %-*s %13s %13s %13s %9s %9s",
			nameW, "Scenario", "Gross", "Net", "After tax", "ROI", "Days")))
	}
	b.WriteString("\n")

	for i, row := range a.comparison {
		marker := "  "
		style := rowStyle
		if row.Current {
			marker = "▸ "
			style = currentStyle
		}
		name := truncStr(row.Name, nameW)

		if row.Err != "" {
			b.WriteString(style.Render(fmt.Sprintf("%s%-*s ", marker, nameW, name)))
			b.WriteString(errStyle.Render(truncStr(row.Err, max(innerW-nameW-3, 10))))
		} else if compact {
			b.WriteString(style.Render(fmt.Sprintf("%s%-*s %13s %9s", marker, nameW, name,
				cli.FormatIDRCompact(row.NetRevenue), cli.FormatPercent(row.ROI))))
		} else {
			b.WriteString(style.Render(fmt.Sprintf("%s%-*s %13s %13s %13s %9s %9.2f", marker, nameW, name,
				cli.FormatIDRCompact(row.GrossRevenue), cli.FormatIDRCompact(row.NetRevenue),
				cli.FormatIDRCompact(row.AfterTaxRevenue), cli.FormatPercent(row.ROI), row.CompletionDays)))
		}
		if i < len(a.comparison)-1 {
			b.WriteString("\n")
		}
	}

	if a.loadErr != nil {
		b.WriteString("\n\n")
		b.WriteString(errStyle.Render("Catalog: " + a.loadErr.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[n/N] switch scenario  [c] toggle clamp"))

	return components.ContentCard(fmt.Sprintf("Scenarios (%d)", len(a.comparison)), b.String(), cw)
}
