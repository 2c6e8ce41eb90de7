package components

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the status bar reports about the current calculation.
type StatusInfo struct {
	Scenario    string
	Source      string
	Clamp       bool
	ComputeTime time.Duration
	Message     string // transient, e.g. "saved"
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	flash := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.SurfaceHover)

	left := base.Render(" [?]help  [n/N]scenario  [c]lamp  [q]uit ")
	if info.Message != "" {
		left += flash.Render(" " + info.Message + " ")
	}

	clamp := "off"
	if info.Clamp {
		clamp = "on"
	}
	right := accent.Render(info.Scenario) +
		base.Render(fmt.Sprintf(" · %s · clamp %s · %s ", info.Source, clamp, formatComputeTime(info.ComputeTime)))

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(fmt.Sprintf("%*s", gap, "")) + right
}

func formatComputeTime(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
}
