package cli

import "testing"

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{999, "Rp 999"},
		{405_000_000, "Rp 405.000.000"},
		{24_237_192.65, "Rp 24.237.193"},
		{2.5, "Rp 3"},
		{-16_000, "-Rp 16.000"},
		{-0.4, "Rp 0"},
	}
	for _, tt := range tests {
		if got := FormatIDR(tt.in); got != tt.want {
			t.Errorf("FormatIDR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatIDRCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4_860_000_000, "Rp 4,86 M"},
		{91_942_620, "Rp 91,94 Jt"},
		{16_500, "Rp 16,5 Rb"},
		{450, "Rp 450"},
		{-2_000_000, "-Rp 2 Jt"},
	}
	for _, tt := range tests {
		if got := FormatIDRCompact(tt.in); got != tt.want {
			t.Errorf("FormatIDRCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentAndDays(t *testing.T) {
	if got := FormatPercent(106.194584957); got != "106.19%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(-90); got != "-90.00%" {
		t.Errorf("FormatPercent(-90) = %q", got)
	}
	if got := FormatDays(26.041666); got != "26.04 days" {
		t.Errorf("FormatDays = %q", got)
	}
	if got := FormatMonths(7); got != "7 months" {
		t.Errorf("FormatMonths = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1500, 1000); got != "+Rp 500" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(1000, 1500); got != "-Rp 500" {
		t.Errorf("FormatDelta down = %q", got)
	}
}
