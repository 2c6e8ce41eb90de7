package tui

import (
	"strings"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/tui/components"
	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderLiveAudioTab(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	p := a.liveParams
	var in strings.Builder
	in.WriteString(labelStyle.Render("Base price / min:  ") + valueStyle.Render(cli.FormatIDR(p.BasePricePerMinute)) + "\n")
	in.WriteString(labelStyle.Render("Sell price / min:  ") + valueStyle.Render(cli.FormatIDR(p.PricePerMinute)) + "\n")
	in.WriteString(labelStyle.Render("Deposit per user:  ") + valueStyle.Render(cli.FormatIDR(p.DepositAmount)) + "\n")
	in.WriteString(labelStyle.Render("Target users:      ") + valueStyle.Render(cli.FormatNumber(int64(p.TargetUsers))) + "\n")
	in.WriteString(labelStyle.Render("Operational cost:  ") + valueStyle.Render(cli.FormatIDR(p.OperationalCost)) + "\n\n")
	in.WriteString(dimStyle.Render("Set under [live_audio] in config.toml"))

	if a.liveErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		return components.ContentCard("Live Audio", warn.Render(a.liveErr.Error()), cw) + "\n" +
			components.ContentCard("Inputs", in.String(), cw)
	}
	r := a.liveAudio

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Deposit", Value: cli.FormatIDRCompact(r.TotalDeposit), Delta: cli.FormatMinutes(r.EstimatedMinutes)},
		{Label: "Gross Margin", Value: cli.FormatIDRCompact(r.GrossMargin), Negative: r.GrossMargin < 0,
			Delta: cli.FormatIDR(r.MarginPerMinute) + "/min"},
		{Label: "Net Revenue", Value: cli.FormatIDRCompact(r.NetRevenue), Negative: r.NetRevenue < 0},
		{Label: "ROI", Value: cli.FormatPercent(r.ROI), Negative: r.ROI < 0, Delta: "margin " + cli.FormatPercent(r.MarginPercent)},
	}, cw))
	b.WriteString("\n")

	var out strings.Builder
	out.WriteString(labelStyle.Render("Cost to serve:     ") + valueStyle.Render(cli.FormatIDR(r.CostToServe)) + "\n")
	out.WriteString(labelStyle.Render("Margin per minute: ") + valueStyle.Render(cli.FormatIDR(r.MarginPerMinute)) + "\n")
	out.WriteString(labelStyle.Render("Margin:            ") + valueStyle.Render(cli.FormatPercent(r.MarginPercent)) + "\n\n")
	out.WriteString(components.ProgressBar(r.MarginPercent/100, max(components.CardInnerWidth(cw)/2-8, 10)))

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Inputs", in.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Margin", out.String(), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Inputs", in.String(), halves[0]),
		components.ContentCard("Margin", out.String(), halves[1]),
	}))
	return b.String()
}
