package revenue

import "math"

// Results holds the metrics derived from one Params value. Values are never
// rounded; rounding belongs to formatting.
type Results struct {
	GrossRevenue            float64 `json:"gross_revenue"`
	TotalMinutes            float64 `json:"total_minutes"`
	DailyCapacityMinutes    float64 `json:"daily_capacity_minutes"`
	CompletionDays          float64 `json:"completion_days"`
	CompletionMonths        int     `json:"completion_months"`
	AdjustedOperationalCost float64 `json:"adjusted_operational_cost"`
	NetRevenue              float64 `json:"net_revenue"`
	TaxAmount               float64 `json:"tax_amount"`
	AfterTaxRevenue         float64 `json:"after_tax_revenue"`
	TotalInvestment         float64 `json:"total_investment"`
	ROI                     float64 `json:"roi"`
}

// Compute derives Results from p.
//
// The operational cost is scaled to the project duration
// (opCost/12 per completion month), not charged as a flat annual figure.
func Compute(p Params) (Results, error) {
	if err := p.Validate(); err != nil {
		return Results{}, err
	}

	capacity := p.Channels * minutesPerHour * p.HoursPerDay
	if capacity == 0 {
		return Results{}, &DivisionByZeroError{Quantity: "daily capacity (channels * 60 * hours_per_day)"}
	}
	if math.IsInf(capacity, 0) {
		return Results{}, invalid("channels", p.Channels, "daily capacity overflows")
	}

	var r Results
	r.GrossRevenue = p.CallDurationMinutes * p.TargetVolume * p.PricePerMinute
	r.TotalMinutes = p.CallDurationMinutes * p.TargetVolume
	r.DailyCapacityMinutes = capacity
	r.CompletionDays = r.TotalMinutes / capacity
	if months := r.CompletionDays / daysPerMonth; math.IsInf(months, 0) || months > math.MaxInt32 {
		return Results{}, invalid("target_volume", p.TargetVolume, "completion period is too long to project")
	}
	r.CompletionMonths = int(math.Ceil(r.CompletionDays / daysPerMonth))
	r.AdjustedOperationalCost = (p.OperationalCostPerPeriod / monthsPerYear) * float64(r.CompletionMonths)
	r.NetRevenue = r.GrossRevenue - r.AdjustedOperationalCost - p.OneTimePurchaseCost
	r.TaxAmount = r.NetRevenue * p.TaxRatePercent / 100
	r.AfterTaxRevenue = r.NetRevenue - r.TaxAmount
	r.TotalInvestment = r.AdjustedOperationalCost + p.OneTimePurchaseCost

	if r.TotalInvestment == 0 {
		return Results{}, &DivisionByZeroError{Quantity: "total investment (adjusted operational cost + one-time cost)"}
	}
	r.ROI = r.AfterTaxRevenue / r.TotalInvestment * 100

	if err := r.checkFinite(); err != nil {
		return Results{}, err
	}
	return r, nil
}

func (r Results) checkFinite() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"gross_revenue", r.GrossRevenue},
		{"total_minutes", r.TotalMinutes},
		{"daily_capacity_minutes", r.DailyCapacityMinutes},
		{"completion_days", r.CompletionDays},
		{"adjusted_operational_cost", r.AdjustedOperationalCost},
		{"net_revenue", r.NetRevenue},
		{"tax_amount", r.TaxAmount},
		{"after_tax_revenue", r.AfterTaxRevenue},
		{"total_investment", r.TotalInvestment},
		{"roi", r.ROI},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.name, f.v, "inputs overflow to a non-finite result")
		}
	}
	return nil
}
