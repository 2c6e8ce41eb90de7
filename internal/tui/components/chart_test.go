package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/theirongolddev/revcalc/internal/tui/theme"
)

func TestSparklineFloorsNegatives(t *testing.T) {
	got := ansi.Strip(Sparkline([]float64{-5, 0, 50, 100}, theme.Active.Accent))
	if got != "▁▁▄█" {
		t.Fatalf("Sparkline = %q, want %q", got, "▁▁▄█")
	}
}

func TestBarChartShape(t *testing.T) {
	values := []float64{10, 20, 40, -5}
	labels := []string{"Jan", "Feb", "Mar", "Apr"}
	out := ansi.Strip(BarChart(values, labels, theme.Active.Accent, 60, 6))
	lines := strings.Split(out, "\n")

	// 6 bar rows, the axis and the label row.
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "40") {
		t.Fatalf("top row should carry the peak label: %q", lines[0])
	}
	if !strings.Contains(lines[6], "└") {
		t.Fatalf("axis row missing: %q", lines[6])
	}
	for _, l := range labels {
		if !strings.Contains(lines[7], l) {
			t.Fatalf("label row %q missing %s", lines[7], l)
		}
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := ansi.Strip(BarChart([]float64{1, 2, 3}, nil, theme.Active.Accent, 5, 6))
	if out != "▃▅█" {
		t.Fatalf("narrow BarChart = %q, want sparkline", out)
	}
}

func TestFormatAxisLabel(t *testing.T) {
	cases := map[float64]string{
		405_000_000:   "405Jt",
		4_860_000_000: "4.9M",
		1_500:         "1.5Rb",
		2e12:          "2T",
		12:            "12",
	}
	for v, want := range cases {
		if got := FormatAxisLabel(v); got != want {
			t.Fatalf("FormatAxisLabel(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestThresholdBarCoverage(t *testing.T) {
	out := ansi.Strip(ThresholdBar("Jan", 50, 200, 5, 10))
	if !strings.HasPrefix(out, "Jan  ") || !strings.HasSuffix(out, "25%") {
		t.Fatalf("ThresholdBar = %q", out)
	}
	if got := ColorForCoverage(1.5); got != theme.Active.Green {
		t.Fatalf("ColorForCoverage(1.5) = %s, want green", got)
	}
	if got := ColorForCoverage(0.1); got != theme.Active.Red {
		t.Fatalf("ColorForCoverage(0.1) = %s, want red", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('d'); got != 2 {
		t.Fatalf("TabIdxByKey('d') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
	for _, tab := range Tabs {
		if keyIndex(tab) < 0 {
			t.Fatalf("tab %q has no visible shortcut letter %q", tab.Name, tab.Key)
		}
	}
}
