package revenue

import (
	"math"
	"time"
)

const (
	optimisticFactor   = 1.15
	conservativeFactor = 0.85
)

// ProjectionOptions controls how the monthly projection is labeled and
// whether negative monthly revenue is floored at zero.
type ProjectionOptions struct {
	// StartMonth labels the first entry. Zero means January.
	StartMonth time.Month
	// Clamp floors each month's current revenue at 0. With Clamp off the
	// projection reports true losses.
	Clamp bool
}

// DefaultProjectionOptions starts at the month of now with clamping on.
func DefaultProjectionOptions(now time.Time) ProjectionOptions {
	return ProjectionOptions{StartMonth: now.Month(), Clamp: true}
}

// MonthlyProjection is one month of the 12-month revenue projection.
type MonthlyProjection struct {
	Index                int        `json:"index"`
	Month                time.Month `json:"-"`
	Label                string     `json:"month"`
	GrossShare           float64    `json:"gross_share"`
	OperationalCostShare float64    `json:"operational_cost_share"`
	// Deducted is every cost taken out of GrossShare this month.
	Deducted     float64 `json:"deducted"`
	Current      float64 `json:"current"`
	Clamped      bool    `json:"clamped,omitempty"`
	TaxedCurrent float64 `json:"taxed_current"`
	Projected    float64 `json:"projected"`
	Conservative float64 `json:"conservative"`
}

// Project builds the 12-month projection for p and its computed results.
// The first month also carries the one-time purchase cost; later months
// carry only their share of the operational cost.
func Project(p Params, r Results, opts ProjectionOptions) ([]MonthlyProjection, error) {
	start := opts.StartMonth
	if start == 0 {
		start = time.January
	}
	if start < time.January || start > time.December {
		return nil, invalid("start_month", float64(start), "must be between 1 and 12")
	}
	if r.CompletionMonths == 0 {
		return nil, &DivisionByZeroError{Quantity: "completion months"}
	}

	grossShare := r.GrossRevenue / monthsPerYear
	opShare := p.OperationalCostPerPeriod / float64(r.CompletionMonths)
	if !isFinite(grossShare) || !isFinite(opShare) {
		return nil, invalid("operational_cost_per_period", p.OperationalCostPerPeriod, "monthly shares overflow")
	}

	months := make([]MonthlyProjection, monthsPerYear)
	for i := range months {
		deducted := opShare
		if i == 0 {
			deducted = p.OneTimePurchaseCost + opShare
		}

		current := grossShare - deducted
		clamped := false
		if opts.Clamp && current < 0 {
			current = 0
			clamped = true
		}

		taxed := current - current*p.TaxRatePercent/100
		if !isFinite(deducted) || !isFinite(current) || !isFinite(taxed*optimisticFactor) {
			return nil, invalid("one_time_purchase_cost", p.OneTimePurchaseCost, "monthly deduction overflows")
		}
		m := time.Month((int(start)-1+i)%monthsPerYear + 1)

		months[i] = MonthlyProjection{
			Index:                i,
			Month:                m,
			Label:                MonthLabel(m),
			GrossShare:           grossShare,
			OperationalCostShare: opShare,
			Deducted:             deducted,
			Current:              current,
			Clamped:              clamped,
			TaxedCurrent:         taxed,
			Projected:            taxed * optimisticFactor,
			Conservative:         taxed * conservativeFactor,
		}
	}
	return months, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MonthLabel returns the three-letter month abbreviation, e.g. "Jan".
func MonthLabel(m time.Month) string {
	return m.String()[:3]
}

// Summary condenses a monthly projection.
type Summary struct {
	TotalCurrent      float64 `json:"total_current"`
	TotalProjected    float64 `json:"total_projected"`
	TotalConservative float64 `json:"total_conservative"`
	AverageMonthly    float64 `json:"average_monthly"`
	// BreakEvenMonth is the index of the first month whose cumulative
	// current revenue covers the first-month threshold, or -1.
	BreakEvenMonth int    `json:"break_even_month"`
	BreakEvenLabel string `json:"break_even_label,omitempty"`
}

// Summarize totals months and finds the break-even month.
func Summarize(p Params, months []MonthlyProjection) Summary {
	s := Summary{BreakEvenMonth: -1}
	if len(months) == 0 {
		return s
	}

	threshold := p.OneTimePurchaseCost + p.OperationalCostPerPeriod
	cumulative := 0.0
	for _, m := range months {
		s.TotalCurrent += m.Current
		s.TotalProjected += m.Projected
		s.TotalConservative += m.Conservative

		cumulative += m.Current
		if s.BreakEvenMonth < 0 && cumulative >= threshold && !math.IsInf(cumulative, 0) {
			s.BreakEvenMonth = m.Index
			s.BreakEvenLabel = m.Label
		}
	}
	s.AverageMonthly = s.TotalCurrent / float64(len(months))
	return s
}
