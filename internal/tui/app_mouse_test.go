package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	names := []string{"Overview", "Monthly", "Daily", "Parameters", "LokalAI", "Live Audio"}

	for active := range names {
		a := App{activeTab: active}
		pos := 0

		for i, name := range names {
			w := len(name) + 2 // horizontal padding in tab renderer
			x := pos + w/2     // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func TestMouseClickOnTabBarSwitchesTab(t *testing.T) {
	a := loadedApp(t)
	// "Overview" spans 10 columns plus the separator; column 12 is Monthly.
	m, _ := a.Update(tea.MouseMsg{X: 12, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabMonthly {
		t.Fatalf("activeTab = %d, want %d", got, tabMonthly)
	}

	// Clicks below the tab bar are ignored.
	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabMonthly {
		t.Fatalf("activeTab after body click = %d, want %d", got, tabMonthly)
	}
}

func TestMouseWheelChangesDailyMonth(t *testing.T) {
	a := loadedApp(t)
	a.activeTab = tabDaily

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.(App).dailyMonth; got != 1 {
		t.Fatalf("dailyMonth = %d, want 1", got)
	}
	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if got := m.(App).dailyMonth; got != 0 {
		t.Fatalf("dailyMonth = %d, want 0", got)
	}
}
