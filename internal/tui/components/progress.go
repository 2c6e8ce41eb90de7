package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar followed by its percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := min(max(int(pct*float64(width)), 0), width)

	barColor := t.Cyan
	switch {
	case pct >= 1:
		barColor = t.Green
	case pct >= 0.5:
		barColor = t.Accent
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForCoverage returns red below the threshold, yellow at it and green
// above it. coverage is cumulative revenue divided by the threshold.
func ColorForCoverage(coverage float64) lipgloss.Color {
	t := theme.Active
	switch {
	case coverage > 1:
		return t.Green
	case coverage == 1:
		return t.Yellow
	case coverage >= 0.5:
		return t.Orange
	default:
		return t.Red
	}
}

// ThresholdBar renders how far cumulative revenue has come toward a cost
// threshold, as a labeled bar with the coverage percentage.
func ThresholdBar(label string, cumulative, threshold float64, labelW, barWidth int) string {
	t := theme.Active

	coverage := 1.0
	if threshold > 0 {
		coverage = cumulative / threshold
	}
	fill := min(max(coverage, 0), 1)
	color := ColorForCoverage(coverage)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(fill) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", coverage*100))
}
