package cli

import (
	"strings"
	"testing"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Month", "Current"},
		Rows: [][]string{
			{"Jan", Money(-16000)},
			Separator,
			{"Feb", Money(4000)},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}

	width := -1
	for _, l := range lines {
		w := visualWidth(l)
		if width == -1 {
			width = w
		}
		if w != width {
			t.Fatalf("ragged table, line %q has width %d, want %d", l, w, width)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{-5, 0, 4, 8})
	if got != "▁▁▄█" {
		t.Fatalf("RenderSparkline = %q, want ▁▁▄█", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("RenderSparkline(nil) should be empty")
	}
}

func visualWidth(s string) int {
	// Strip ANSI escape sequences before counting runes.
	var n int
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		default:
			n++
		}
	}
	return n
}
