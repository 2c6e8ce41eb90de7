package revenue

// ThresholdType names the cost a day's cumulative revenue is compared to.
type ThresholdType string

const (
	// TotalInvestment applies to the first month: one-time plus operational cost.
	TotalInvestment ThresholdType = "TotalInvestment"
	// OperationalCost applies to every later month.
	OperationalCost ThresholdType = "OperationalCost"
)

// Status classifies cumulative revenue against the threshold.
type Status string

const (
	Loss      Status = "Loss"
	BreakEven Status = "BreakEven"
	Profit    Status = "Profit"
)

// DailyEntry is one synthetic day of a month's break-even breakdown.
type DailyEntry struct {
	Day               int           `json:"day"`
	MonthIndex        int           `json:"month_index"`
	Month             string        `json:"month"`
	DailyRevenue      float64       `json:"daily_revenue"`
	CumulativeRevenue float64       `json:"cumulative_revenue"`
	Threshold         float64       `json:"threshold"`
	ThresholdType     ThresholdType `json:"threshold_type"`
	Status            Status        `json:"status"`
}

// DailyBreakdown splits months[monthIndex] into 30 days. The running total
// starts from the sum of every earlier month's current revenue, so it
// carries across month boundaries.
func DailyBreakdown(months []MonthlyProjection, monthIndex int, p Params) ([]DailyEntry, error) {
	if monthIndex < 0 || monthIndex >= len(months) {
		return nil, invalid("month_index", float64(monthIndex), "out of range for projection")
	}

	cumulative := 0.0
	for _, m := range months[:monthIndex] {
		cumulative += m.Current
	}

	threshold, kind := p.OperationalCostPerPeriod, OperationalCost
	if monthIndex == 0 {
		threshold, kind = p.OneTimePurchaseCost+p.OperationalCostPerPeriod, TotalInvestment
	}

	month := months[monthIndex]
	daily := month.Current / daysPerMonth

	days := make([]DailyEntry, daysPerMonth)
	for i := range days {
		cumulative += daily
		days[i] = DailyEntry{
			Day:               i + 1,
			MonthIndex:        monthIndex,
			Month:             month.Label,
			DailyRevenue:      daily,
			CumulativeRevenue: cumulative,
			Threshold:         threshold,
			ThresholdType:     kind,
			Status:            classify(cumulative, threshold),
		}
	}
	return days, nil
}

func classify(cumulative, threshold float64) Status {
	switch {
	case cumulative < threshold:
		return Loss
	case cumulative == threshold:
		return BreakEven
	default:
		return Profit
	}
}
