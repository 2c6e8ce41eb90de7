package revenue

import (
	"fmt"
	"math"
)

// YearProjection is one year of an investor-facing forecast.
type YearProjection struct {
	Year    int     `json:"year"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// GrowYearly compounds year-one figures by growthPercent per year.
func GrowYearly(yearOneRevenue, yearOneProfit, growthPercent float64, years int) ([]YearProjection, error) {
	if years < 1 {
		return nil, invalid("years", float64(years), "must be at least 1")
	}
	if growthPercent <= -100 || math.IsNaN(growthPercent) || math.IsInf(growthPercent, 0) {
		return nil, invalid("growth_percent", growthPercent, "must be greater than -100")
	}

	factor := 1 + growthPercent/100
	out := make([]YearProjection, years)
	for y := range out {
		mult := math.Pow(factor, float64(y))
		out[y] = YearProjection{
			Year:    y + 1,
			Label:   fmt.Sprintf("Year %d", y+1),
			Revenue: yearOneRevenue * mult,
			Profit:  yearOneProfit * mult,
		}
	}
	return out, nil
}

// BusinessLine is one product line of the investor portfolio.
type BusinessLine struct {
	Name            string  `json:"name"`
	YearOneRevenue  float64 `json:"year_one_revenue"`
	YearOneProfit   float64 `json:"year_one_profit"`
	GrowthPercent   float64 `json:"growth_percent"`
	OneTimeCost     float64 `json:"one_time_cost"`
	OperationalCost float64 `json:"operational_cost"` // yearly
}

// LineProjection is a business line with its yearly forecast.
type LineProjection struct {
	Line  BusinessLine     `json:"line"`
	Years []YearProjection `json:"years"`
	ROI   float64          `json:"roi"`
}

// Portfolio aggregates several business lines year by year.
type Portfolio struct {
	Lines    []LineProjection `json:"lines"`
	Combined []YearProjection `json:"combined"`
	// ROI is year-one combined profit over combined one-time and yearly
	// operational cost.
	ROI float64 `json:"roi"`
}

// ProjectPortfolio forecasts each line and sums them without any synergy.
func ProjectPortfolio(lines []BusinessLine, years int) (Portfolio, error) {
	if years < 1 {
		return Portfolio{}, invalid("years", float64(years), "must be at least 1")
	}

	p := Portfolio{Combined: make([]YearProjection, years)}
	for y := range p.Combined {
		p.Combined[y] = YearProjection{Year: y + 1, Label: fmt.Sprintf("Year %d", y+1)}
	}

	investment := 0.0
	for _, l := range lines {
		ys, err := GrowYearly(l.YearOneRevenue, l.YearOneProfit, l.GrowthPercent, years)
		if err != nil {
			return Portfolio{}, fmt.Errorf("line %s: %w", l.Name, err)
		}

		lp := LineProjection{Line: l, Years: ys}
		if base := l.OneTimeCost + l.OperationalCost; base > 0 {
			lp.ROI = l.YearOneProfit / base * 100
		}
		for y := range ys {
			p.Combined[y].Revenue += ys[y].Revenue
			p.Combined[y].Profit += ys[y].Profit
		}
		investment += l.OneTimeCost + l.OperationalCost
		p.Lines = append(p.Lines, lp)
	}

	if investment > 0 {
		p.ROI = p.Combined[0].Profit / investment * 100
	}
	return p, nil
}

// TelemarketingLine turns a call-center calculation into a portfolio line.
// The campaign is assumed to repeat back to back, so a year holds
// 12/completionMonths campaigns.
func TelemarketingLine(name string, p Params, r Results, growthPercent float64) BusinessLine {
	cycles := 1.0
	if r.CompletionMonths > 0 {
		cycles = monthsPerYear / float64(r.CompletionMonths)
	}
	return BusinessLine{
		Name:            name,
		YearOneRevenue:  r.GrossRevenue * cycles,
		YearOneProfit:   r.NetRevenue * cycles,
		GrowthPercent:   growthPercent,
		OneTimeCost:     p.OneTimePurchaseCost,
		OperationalCost: p.OperationalCostPerPeriod * monthsPerYear,
	}
}

// LiveAudioLine turns live-audio results into a portfolio line with the
// given up-front development cost.
func LiveAudioLine(name string, p LiveAudioParams, r LiveAudioResults, oneTimeCost, growthPercent float64) BusinessLine {
	return BusinessLine{
		Name:            name,
		YearOneRevenue:  r.TotalDeposit,
		YearOneProfit:   r.NetRevenue,
		GrowthPercent:   growthPercent,
		OneTimeCost:     oneTimeCost,
		OperationalCost: p.OperationalCost,
	}
}

// LokalAILine turns the software-only LokalAI forecast into a portfolio line.
func LokalAILine(name string, lp LokalAIProjection, oneTimeCost, operationalCost float64) BusinessLine {
	yearOne := 0.0
	if len(lp.SoftwareOnlyByYear) > 0 {
		yearOne = lp.SoftwareOnlyByYear[0]
	}
	return BusinessLine{
		Name:            name,
		YearOneRevenue:  yearOne,
		YearOneProfit:   yearOne - operationalCost,
		OneTimeCost:     oneTimeCost,
		OperationalCost: operationalCost,
	}
}
