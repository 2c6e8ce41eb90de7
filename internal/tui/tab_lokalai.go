package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/tui/components"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderLokalAITab(cw int) string {
	t := theme.Active
	if a.lokalaiErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		return components.ContentCard("LokalAI", warn.Render(a.lokalaiErr.Error()), cw)
	}
	lp := a.lokalai

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Software Only", Value: cli.FormatIDRCompact(lp.SoftwareOnlyTotal), Delta: fmt.Sprintf("%d years", lp.Years)},
		{Label: "Bundling", Value: cli.FormatIDRCompact(lp.BundlingTotal), Delta: cli.FormatDelta(lp.BundlingTotal, lp.SoftwareOnlyTotal) + " vs software"},
		{Label: "Users", Value: cli.FormatNumber(int64(lp.TotalUsers)), Delta: "avg " + cli.FormatIDRCompact(lp.AverageSoftwarePrice) + "/yr"},
	}, cw))
	b.WriteString("\n")

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	softStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface)
	bundleStyle := lipgloss.NewStyle().Foreground(t.Magenta).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	const colW = 13
	var tbl strings.Builder
	tbl.WriteString(headStyle.Render(fmt.Sprintf("%-8s %5s %-9s", "Tier", "Users", "Plan")))
	for y := range lp.Years {
		tbl.WriteString(headStyle.Render(fmt.Sprintf(" %*s", colW, fmt.Sprintf("Year %d", y+1))))
	}
	tbl.WriteString("\n")

	for _, tp := range lp.Tiers {
		for plan, series := range [][]float64{tp.SoftwareOnly, tp.Bundling} {
			name, users, label, style := tp.Tier.Name, cli.FormatNumber(int64(tp.Tier.TargetUsers)), "software", softStyle
			if plan == 1 {
				name, users, label, style = "", "", "bundling", bundleStyle
			}
			tbl.WriteString(nameStyle.Render(fmt.Sprintf("%-8s %5s ", name, users)))
			tbl.WriteString(style.Render(fmt.Sprintf("%-9s", label)))
			for _, v := range series {
				tbl.WriteString(spaceStyle.Render(" "))
				tbl.WriteString(nameStyle.Render(fmt.Sprintf("%*s", colW, cli.FormatIDRCompact(v))))
			}
			tbl.WriteString("\n")
		}
	}

	totalRow := func(label string, style lipgloss.Style, series []float64) {
		tbl.WriteString(headStyle.Render(fmt.Sprintf("%-14s ", "Total")))
		tbl.WriteString(style.Render(fmt.Sprintf("%-9s", label)))
		for _, v := range series {
			tbl.WriteString(spaceStyle.Render(" "))
			tbl.WriteString(headStyle.Render(fmt.Sprintf("%*s", colW, cli.FormatIDRCompact(v))))
		}
	}
	totalRow("software", softStyle, lp.SoftwareOnlyByYear)
	tbl.WriteString("\n")
	totalRow("bundling", bundleStyle, lp.BundlingByYear)

	b.WriteString(components.ContentCard("License Revenue by Year", tbl.String(), cw))
	b.WriteString("\n")

	// Year-by-year comparison of both plans
	maxVal := 0.0
	for i := range lp.Years {
		maxVal = max(maxVal, lp.SoftwareOnlyByYear[i], lp.BundlingByYear[i])
	}
	barW := max(components.CardInnerWidth(cw)-30, 10)
	var bars strings.Builder
	for i := range lp.Years {
		bars.WriteString(planBar(fmt.Sprintf("Y%d software", i+1), lp.SoftwareOnlyByYear[i], maxVal, barW, t.Blue))
		bars.WriteString("\n")
		bars.WriteString(planBar(fmt.Sprintf("Y%d bundling", i+1), lp.BundlingByYear[i], maxVal, barW, t.Magenta))
		if i < lp.Years-1 {
			bars.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard("Plans Compared", bars.String(), cw))
	return b.String()
}

func planBar(label string, value, maxVal float64, width int, color lipgloss.Color) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	n := 0
	if maxVal > 0 {
		n = min(max(int(value/maxVal*float64(width)), 0), width)
	}
	return labelStyle.Render(fmt.Sprintf("%-13s ", label)) +
		barStyle.Render(strings.Repeat("█", n)+strings.Repeat(" ", width-n)) +
		valueStyle.Render(fmt.Sprintf(" %13s", cli.FormatIDRCompact(value)))
}
