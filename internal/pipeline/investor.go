package pipeline

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

// InvestorInputs are the non-telemarketing assumptions of the investor view.
type InvestorInputs struct {
	GrowthPercent      float64
	Years              int
	Tiers              []revenue.Tier
	LokalAIOneTime     float64
	LokalAIOperational float64
	LiveAudio          revenue.LiveAudioParams
	LiveAudioOneTime   float64
}

// InvestorReport is the combined multi-year portfolio.
type InvestorReport struct {
	Telemarketing model.Scenario           `json:"telemarketing"`
	LiveAudio     revenue.LiveAudioResults  `json:"live_audio"`
	LokalAI       revenue.LokalAIProjection `json:"lokalai"`
	Portfolio     revenue.Portfolio         `json:"portfolio"`
}

// Investor builds the three-line portfolio: the telemarketing scenario,
// live audio and LokalAI licensing. LokalAI's own growth comes from its
// tier forecast, so it is given no extra growth rate.
func Investor(tele model.Scenario, in InvestorInputs) (*InvestorReport, error) {
	r, err := revenue.Compute(tele.Params)
	if err != nil {
		return nil, fmt.Errorf("telemarketing %q: %w", tele.Name, err)
	}
	la, err := revenue.ComputeLiveAudio(in.LiveAudio)
	if err != nil {
		return nil, fmt.Errorf("live audio: %w", err)
	}
	lk, err := revenue.ProjectLokalAI(in.Tiers, in.Years)
	if err != nil {
		return nil, fmt.Errorf("lokalai: %w", err)
	}

	lines := []revenue.BusinessLine{
		revenue.TelemarketingLine("Telemarketing", tele.Params, r, in.GrowthPercent),
		revenue.LiveAudioLine("Live Audio", in.LiveAudio, la, in.LiveAudioOneTime, in.GrowthPercent),
		revenue.LokalAILine("LokalAI", lk, in.LokalAIOneTime, in.LokalAIOperational),
	}
	portfolio, err := revenue.ProjectPortfolio(lines, in.Years)
	if err != nil {
		return nil, err
	}

	return &InvestorReport{
		Telemarketing: tele,
		LiveAudio:     la,
		LokalAI:       lk,
		Portfolio:     portfolio,
	}, nil
}
