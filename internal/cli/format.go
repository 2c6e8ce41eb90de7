// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts are Indonesian Rupiah, grouped the Indonesian way: 405.000.000.
var idPrinter = message.NewPrinter(language.Indonesian)

// round rounds half away from zero to places decimals. Float formatting
// alone rounds half to even, which shows up on .5 Rupiah amounts.
func round(v float64, places int32) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(places)
}

// FormatIDR formats a Rupiah amount rounded to whole Rupiah.
// e.g., 405000000 -> "Rp 405.000.000", -16000 -> "-Rp 16.000"
func FormatIDR(v float64) string {
	d := round(v, 0)
	if d.IsNegative() {
		return "-Rp " + groupInt(d.Neg())
	}
	return "Rp " + groupInt(d)
}

// FormatIDRCompact abbreviates large amounts with Indonesian suffixes.
// e.g., 4860000000 -> "Rp 4,86 M", 91942620 -> "Rp 91,94 Jt", 16500 -> "Rp 16,5 Rb"
func FormatIDRCompact(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	var scaled float64
	var suffix string
	switch {
	case v >= 1e12:
		scaled, suffix = v/1e12, " T"
	case v >= 1e9:
		scaled, suffix = v/1e9, " M"
	case v >= 1e6:
		scaled, suffix = v/1e6, " Jt"
	case v >= 1e3:
		scaled, suffix = v/1e3, " Rb"
	default:
		return sign + "Rp " + groupInt(round(v, 0))
	}

	s := round(scaled, 2).String()
	return sign + "Rp " + strings.Replace(s, ".", ",", 1) + suffix
}

// FormatNumber groups an integer with Indonesian separators.
// e.g., 900000 -> "900.000"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return idPrinter.Sprintf("%d", n)
}

func groupInt(d decimal.Decimal) string {
	if !d.IsInteger() || d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return d.StringFixed(0)
	}
	return FormatNumber(d.IntPart())
}

// FormatPercent formats a value that is already a percentage.
// e.g., 106.1945 -> "106.19%"
func FormatPercent(v float64) string {
	return round(v, 2).StringFixed(2) + "%"
}

// FormatDays formats a completion period in days.
func FormatDays(d float64) string {
	if d == 1 {
		return "1 day"
	}
	return round(d, 2).StringFixed(2) + " days"
}

// FormatMonths formats a whole number of months.
func FormatMonths(m int) string {
	if m == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", m)
}

// FormatMinutes formats a minute count, e.g. 900000 -> "900.000 min".
func FormatMinutes(m float64) string {
	return groupInt(round(m, 0)) + " min"
}

// FormatDelta formats the change between two amounts with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if round(delta, 0).IsNegative() {
		return FormatIDR(delta)
	}
	return "+" + FormatIDR(delta)
}

// FormatStatus returns a short label for a break-even status or threshold.
func FormatStatus(s string) string {
	switch s {
	case "BreakEven":
		return "Break-even"
	case "TotalInvestment":
		return "Total investment"
	case "OperationalCost":
		return "Operational cost"
	}
	return s
}
