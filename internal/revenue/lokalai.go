package revenue

import (
	"fmt"
	"math"
)

// Tier is one LokalAI license package.
type Tier struct {
	Name          string  `json:"name" toml:"name"`
	SoftwarePrice float64 `json:"software_price" toml:"software_price"` // per user per year
	BundlingPrice float64 `json:"bundling_price" toml:"bundling_price"` // per user, hardware included, first year only
	TargetUsers   float64 `json:"target_users" toml:"target_users"`
}

// DefaultTiers returns the Bronze, Silver and Gold packages.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "Bronze", SoftwarePrice: 14_000_000, BundlingPrice: 26_000_000, TargetUsers: 7},
		{Name: "Silver", SoftwarePrice: 18_000_000, BundlingPrice: 38_000_000, TargetUsers: 4},
		{Name: "Gold", SoftwarePrice: 24_000_000, BundlingPrice: 70_000_000, TargetUsers: 8},
	}
}

// TierProjection holds per-year revenue for one tier under both plans.
type TierProjection struct {
	Tier         Tier      `json:"tier"`
	SoftwareOnly []float64 `json:"software_only"`
	Bundling     []float64 `json:"bundling"`
}

// LokalAIProjection is the multi-year licensing forecast for all tiers.
type LokalAIProjection struct {
	Years              int              `json:"years"`
	Tiers              []TierProjection `json:"tiers"`
	SoftwareOnlyByYear []float64        `json:"software_only_by_year"`
	BundlingByYear     []float64        `json:"bundling_by_year"`
	SoftwareOnlyTotal  float64          `json:"software_only_total"`
	BundlingTotal      float64          `json:"bundling_total"`
	TotalUsers         float64          `json:"total_users"`
	// AverageSoftwarePrice is the user-weighted mean software price.
	AverageSoftwarePrice float64 `json:"average_software_price"`
}

// ProjectLokalAI forecasts licensing revenue over years. Software-only
// customers pay the software price every year. Bundling customers pay the
// bundling price in year one and the software price afterwards.
func ProjectLokalAI(tiers []Tier, years int) (LokalAIProjection, error) {
	if years < 1 {
		return LokalAIProjection{}, invalid("years", float64(years), "must be at least 1")
	}

	out := LokalAIProjection{
		Years:              years,
		SoftwareOnlyByYear: make([]float64, years),
		BundlingByYear:     make([]float64, years),
	}

	weighted := 0.0
	for _, t := range tiers {
		if err := t.validate(); err != nil {
			return LokalAIProjection{}, err
		}

		software := t.SoftwarePrice * t.TargetUsers
		tp := TierProjection{
			Tier:         t,
			SoftwareOnly: make([]float64, years),
			Bundling:     make([]float64, years),
		}
		for y := 0; y < years; y++ {
			tp.SoftwareOnly[y] = software
			tp.Bundling[y] = software
			if y == 0 {
				tp.Bundling[y] = t.BundlingPrice * t.TargetUsers
			}
			out.SoftwareOnlyByYear[y] += tp.SoftwareOnly[y]
			out.BundlingByYear[y] += tp.Bundling[y]
			out.SoftwareOnlyTotal += tp.SoftwareOnly[y]
			out.BundlingTotal += tp.Bundling[y]
		}

		out.TotalUsers += t.TargetUsers
		weighted += software
		out.Tiers = append(out.Tiers, tp)
	}

	if out.TotalUsers > 0 {
		out.AverageSoftwarePrice = weighted / out.TotalUsers
	}
	return out, nil
}

func (t Tier) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"software_price", t.SoftwarePrice},
		{"bundling_price", t.BundlingPrice},
		{"target_users", t.TargetUsers},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return invalid(fmt.Sprintf("%s.%s", t.Name, f.name), f.v, "must be a finite non-negative number")
		}
	}
	return nil
}
