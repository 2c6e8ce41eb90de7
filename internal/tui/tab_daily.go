package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/revenue"
	"github.com/theirongolddev/revcalc/internal/tui/components"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDailyTab(cw int) string {
	if a.calcErr != nil {
		return a.renderCalcError(cw)
	}

	t := theme.Active
	idx := min(max(a.dailyMonth, 0), len(a.report.Daily)-1)
	days := a.report.Daily[idx]
	month := a.report.Months[idx]
	innerW := components.CardInnerWidth(cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder

	// Month selector and threshold summary
	var head strings.Builder
	for i, m := range a.report.Months {
		style := dimStyle
		if i == idx {
			style = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
		}
		head.WriteString(style.Render(" " + m.Label + " "))
	}
	head.WriteString("\n\n")

	if len(days) == 0 {
		head.WriteString(dimStyle.Render("No days in this month."))
		return components.ContentCard("Daily Breakdown", head.String(), cw)
	}

	first, last := days[0], days[len(days)-1]
	head.WriteString(labelStyle.Render("Threshold:   ") +
		valueStyle.Render(cli.FormatIDR(first.Threshold)+" ("+cli.FormatStatus(string(first.ThresholdType))+")") + "\n")
	head.WriteString(labelStyle.Render("Daily share: ") + valueStyle.Render(cli.FormatIDR(first.DailyRevenue)) + "\n")
	head.WriteString(labelStyle.Render("Month total: ") + valueStyle.Render(cli.FormatIDR(month.Current)) + "\n")
	head.WriteString(labelStyle.Render("Covered:     ") + valueStyle.Render(coveredText(days)) + "\n\n")
	head.WriteString(components.ThresholdBar(month.Label, last.CumulativeRevenue, last.Threshold, 6, max(innerW-14, 10)))

	b.WriteString(components.ContentCard(fmt.Sprintf("Daily Breakdown · %s", month.Label), head.String(), cw))
	b.WriteString("\n")

	// Day list, split into columns when there is room
	cols := 1
	if !a.isCompactLayout() {
		cols = 2
	}
	rows := (len(days) + cols - 1) / cols
	colW := innerW / cols
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var list strings.Builder
	for r := range rows {
		for c := range cols {
			i := c*rows + r
			if i >= len(days) {
				break
			}
			cell := dayLine(days[i])
			list.WriteString(cell)
			if c < cols-1 {
				if pad := colW - lipgloss.Width(cell); pad > 0 {
					list.WriteString(spaceStyle.Render(strings.Repeat(" ", pad)))
				}
			}
		}
		if r < rows-1 {
			list.WriteString("\n")
		}
	}
	list.WriteString("\n\n")
	list.WriteString(dimStyle.Render("[←/→] change month"))

	b.WriteString(components.ContentCard("Cumulative Revenue", list.String(), cw))
	return b.String()
}

func dayLine(d revenue.DailyEntry) string {
	t := theme.Active
	dayStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().Foreground(t.StatusColor(string(d.Status))).Background(t.Surface).Bold(true)

	return dayStyle.Render(fmt.Sprintf("Day %2d  ", d.Day)) +
		amountStyle.Render(fmt.Sprintf("%16s  ", cli.FormatIDR(d.CumulativeRevenue))) +
		statusStyle.Render(fmt.Sprintf("%-10s", cli.FormatStatus(string(d.Status))))
}

// coveredText reports the first day cumulative revenue reaches the threshold.
func coveredText(days []revenue.DailyEntry) string {
	for _, d := range days {
		if d.Status != revenue.Loss {
			return fmt.Sprintf("day %d", d.Day)
		}
	}
	return "not this month"
}
