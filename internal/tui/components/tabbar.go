package components

import (
	"strings"
	"unicode"

	"github.com/theirongolddev/revcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs, in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o'},
	{Name: "Monthly", Key: 'm'},
	{Name: "Daily", Key: 'd'},
	{Name: "Parameters", Key: 'p'},
	{Name: "LokalAI", Key: 'l'},
	{Name: "Live Audio", Key: 'a'},
}

// keyIndex returns the rune index of the first case-insensitive match of
// the tab's key in its name, or -1.
func keyIndex(tab Tab) int {
	for i, r := range []rune(tab.Name) {
		if unicode.ToLower(r) == tab.Key {
			return i
		}
	}
	return -1
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		return lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true).
			Render(" " + tab.Name + " ")
	}

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Underline(true)

	name := []rune(tab.Name)
	idx := keyIndex(tab)
	if idx < 0 {
		return base.Render(" " + tab.Name + " ")
	}
	return base.Render(" "+string(name[:idx])) +
		key.Render(string(name[idx])) +
		base.Render(string(name[idx+1:])+" ")
}

// TabVisualWidth returns the rendered width of a tab, for mouse hit testing.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar on one line, padded to width.
func RenderTabBar(activeIdx, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	bar := strings.Join(parts, sep)

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
