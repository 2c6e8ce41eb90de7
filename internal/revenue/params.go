// Package revenue is the calculation engine for call-volume revenue and ROI
// scenarios. Every function here is pure: identical input yields
// bit-identical output, and no result ever carries NaN or Inf.
package revenue

import "math"

const (
	minutesPerHour = 60
	daysPerMonth   = 30
	monthsPerYear  = 12
)

// Params holds the business inputs of one calculation.
type Params struct {
	CallDurationMinutes      float64 `json:"call_duration_minutes" toml:"call_duration_minutes"`
	TargetVolume             float64 `json:"target_volume" toml:"target_volume"`
	PricePerMinute           float64 `json:"price_per_minute" toml:"price_per_minute"`
	HoursPerDay              float64 `json:"hours_per_day" toml:"hours_per_day"`
	Channels                 float64 `json:"channels" toml:"channels"`
	OneTimePurchaseCost      float64 `json:"one_time_purchase_cost" toml:"one_time_purchase_cost"`
	OperationalCostPerPeriod float64 `json:"operational_cost_per_period" toml:"operational_cost_per_period"`
	TaxRatePercent           float64 `json:"tax_rate_percent" toml:"tax_rate_percent"`
}

// Validate checks every field for a finite, in-range value.
// Zero capacity inputs (hours, channels) pass here and are reported by
// Compute as a division by zero.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"call_duration_minutes", p.CallDurationMinutes},
		{"target_volume", p.TargetVolume},
		{"price_per_minute", p.PricePerMinute},
		{"hours_per_day", p.HoursPerDay},
		{"channels", p.Channels},
		{"one_time_purchase_cost", p.OneTimePurchaseCost},
		{"operational_cost_per_period", p.OperationalCostPerPeriod},
		{"tax_rate_percent", p.TaxRatePercent},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.name, f.v, "must be a finite number")
		}
		if f.v < 0 {
			return invalid(f.name, f.v, "must not be negative")
		}
	}

	if p.CallDurationMinutes == 0 {
		return invalid("call_duration_minutes", p.CallDurationMinutes, "must be greater than 0")
	}
	if p.TaxRatePercent > 100 {
		return invalid("tax_rate_percent", p.TaxRatePercent, "must be between 0 and 100")
	}
	return nil
}
