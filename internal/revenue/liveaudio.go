package revenue

import "math"

// LiveAudioParams describes the deposit-based live-audio B2C package.
type LiveAudioParams struct {
	BasePricePerMinute float64 `json:"base_price_per_minute" toml:"base_price_per_minute"`
	DepositAmount      float64 `json:"deposit_amount" toml:"deposit_amount"`
	TargetUsers        float64 `json:"target_users" toml:"target_users"`
	PricePerMinute     float64 `json:"price_per_minute" toml:"price_per_minute"`
	OperationalCost    float64 `json:"operational_cost" toml:"operational_cost"`
}

// DefaultLiveAudio returns the reference B2C package.
func DefaultLiveAudio() LiveAudioParams {
	return LiveAudioParams{
		BasePricePerMinute: 200,
		DepositAmount:      100_000,
		TargetUsers:        10_000,
		PricePerMinute:     300,
		OperationalCost:    5_000_000,
	}
}

// LiveAudioResults holds the derived live-audio metrics.
type LiveAudioResults struct {
	TotalDeposit     float64 `json:"total_deposit"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
	CostToServe      float64 `json:"cost_to_serve"`
	GrossMargin      float64 `json:"gross_margin"`
	NetRevenue       float64 `json:"net_revenue"`
	ROI              float64 `json:"roi"`
	MarginPerMinute  float64 `json:"margin_per_minute"`
	MarginPercent    float64 `json:"margin_percent"`
}

// ComputeLiveAudio derives the deposit economics. Every deposit is assumed
// to be spent at PricePerMinute; serving a minute costs BasePricePerMinute.
func ComputeLiveAudio(p LiveAudioParams) (LiveAudioResults, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"base_price_per_minute", p.BasePricePerMinute},
		{"deposit_amount", p.DepositAmount},
		{"target_users", p.TargetUsers},
		{"price_per_minute", p.PricePerMinute},
		{"operational_cost", p.OperationalCost},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return LiveAudioResults{}, invalid(f.name, f.v, "must be a finite non-negative number")
		}
	}
	if p.PricePerMinute == 0 {
		return LiveAudioResults{}, &DivisionByZeroError{Quantity: "price_per_minute"}
	}
	if p.OperationalCost == 0 {
		return LiveAudioResults{}, &DivisionByZeroError{Quantity: "operational_cost"}
	}

	var r LiveAudioResults
	r.TotalDeposit = p.DepositAmount * p.TargetUsers
	r.EstimatedMinutes = r.TotalDeposit / p.PricePerMinute
	r.CostToServe = p.BasePricePerMinute * r.EstimatedMinutes
	r.GrossMargin = r.TotalDeposit - r.CostToServe
	r.NetRevenue = r.TotalDeposit - r.CostToServe - p.OperationalCost
	r.ROI = r.NetRevenue / p.OperationalCost * 100
	r.MarginPerMinute = p.PricePerMinute - p.BasePricePerMinute
	if p.BasePricePerMinute > 0 {
		r.MarginPercent = r.MarginPerMinute / p.BasePricePerMinute * 100
	}
	return r, nil
}
