package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values. Values at or below
// zero sit on the baseline.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[min(max(idx, 0), len(sparkBlocks)-1)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarChart renders one vertical bar per value with a y-axis scaled to the
// largest value. Negative values draw no bar; their x-axis label is shown
// in the loss color instead. Falls back to a sparkline when the area is
// too small.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	n := len(values)
	if n == 0 {
		return ""
	}

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	yLabelW := max(len(FormatAxisLabel(peak))+1, 4)
	chartW := width - yLabelW - 1
	barW := min((chartW-(n-1))/n, 6)
	if height < 3 || barW < 1 {
		return Sparkline(values, color)
	}

	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	peakStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := peak * float64(row) / float64(height)
		bottom := peak * float64(row-1) / float64(height)

		label := ""
		switch row {
		case height:
			label = FormatAxisLabel(peak)
		case (height + 1) / 2:
			label = FormatAxisLabel(top)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			style := barStyle
			if v == peak {
				style = peakStyle
			}
			switch {
			case v >= top:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := min(max(int((v-bottom)/(top-bottom)*8), 1), 8)
				b.WriteString(style.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + (n - 1)
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisLabels(values, labels, barW))
	}
	return b.String()
}

// axisLabels places each label under its bar, skipping labels that would
// overlap the previous one.
func axisLabels(values []float64, labels []string, barW int) string {
	t := theme.Active
	normal := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	loss := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	col := 0
	for i, lbl := range labels {
		pos := i * (barW + 1)
		if pos < col {
			continue
		}
		b.WriteString(blank.Render(strings.Repeat(" ", pos-col)))
		style := normal
		if values[i] < 0 {
			style = loss
		}
		b.WriteString(style.Render(lbl))
		col = pos + len([]rune(lbl)) + 1
		b.WriteString(blank.Render(" "))
	}
	return b.String()
}

// FormatAxisLabel abbreviates rupiah amounts with Indonesian unit
// suffixes: Rb (ribu), Jt (juta), M (miliar) and T (triliun).
func FormatAxisLabel(v float64) string {
	units := []struct {
		size   float64
		suffix string
	}{
		{1e12, "T"},
		{1e9, "M"},
		{1e6, "Jt"},
		{1e3, "Rb"},
	}
	for _, u := range units {
		if math.Abs(v) >= u.size {
			scaled := v / u.size
			if scaled == math.Trunc(scaled) {
				return fmt.Sprintf("%.0f%s", scaled, u.suffix)
			}
			return fmt.Sprintf("%.1f%s", scaled, u.suffix)
		}
	}
	return fmt.Sprintf("%.0f", v)
}
