package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

// Document is a view rendered to format-neutral text.
type Document struct {
	Title     string
	Subtitle  string
	Generated time.Time
	Facts     []Fact
	Tables    []Table
}

// Fact is a labeled value.
type Fact struct {
	Label string
	Value string
}

// Table is a titled grid of text cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (d Data) document(view string) (Document, error) {
	switch view {
	case ViewSummary:
		return d.summaryDoc()
	case ViewMonthly:
		return d.monthlyDoc()
	case ViewDaily:
		return d.dailyDoc()
	case ViewComparison:
		return d.comparisonDoc()
	case ViewLokalAI:
		return d.lokalAIDoc()
	case ViewLiveAudio:
		return d.liveAudioDoc()
	case ViewInvestor:
		return d.investorDoc()
	}
	return Document{}, fmt.Errorf("unknown view %q", view)
}

func (d Data) needReport(view string) (*pipeline.Report, error) {
	if d.Report == nil {
		return nil, fmt.Errorf("view %q needs a scenario report", view)
	}
	return d.Report, nil
}

func taxLabel(tax float64) string {
	if tax < 0 {
		return "Tax (credit)"
	}
	return "Tax"
}

func (d Data) summaryDoc() (Document, error) {
	rep, err := d.needReport(ViewSummary)
	if err != nil {
		return Document{}, err
	}
	p, r := rep.Scenario.Params, rep.Results

	breakEven := "not within 12 months"
	if rep.Summary.BreakEvenMonth >= 0 {
		breakEven = fmt.Sprintf("%s (month %d)", rep.Summary.BreakEvenLabel, rep.Summary.BreakEvenMonth+1)
	}

	return Document{
		Title:     "Revenue Summary",
		Subtitle:  rep.Scenario.Name,
		Generated: rep.GeneratedAt,
		Facts: []Fact{
			{"Gross revenue", cli.FormatIDR(r.GrossRevenue)},
			{"After-tax revenue", cli.FormatIDR(r.AfterTaxRevenue)},
			{"ROI", cli.FormatPercent(r.ROI)},
			{"Break-even", breakEven},
		},
		Tables: []Table{
			{
				Title:   "Parameters",
				Headers: []string{"Parameter", "Value"},
				Rows: [][]string{
					{"Call duration", strconv.FormatFloat(p.CallDurationMinutes, 'f', -1, 64) + " min"},
					{"Target volume", cli.FormatNumber(int64(p.TargetVolume)) + " calls"},
					{"Price per minute", cli.FormatIDR(p.PricePerMinute)},
					{"Hours per day", strconv.FormatFloat(p.HoursPerDay, 'f', -1, 64)},
					{"Channels", strconv.FormatFloat(p.Channels, 'f', -1, 64)},
					{"One-time purchase cost", cli.FormatIDR(p.OneTimePurchaseCost)},
					{"Operational cost (yearly)", cli.FormatIDR(p.OperationalCostPerPeriod)},
					{"Tax rate", cli.FormatPercent(p.TaxRatePercent)},
				},
			},
			{
				Title:   "Results",
				Headers: []string{"Metric", "Value"},
				Rows: [][]string{
					{"Gross revenue", cli.FormatIDR(r.GrossRevenue)},
					{"Total minutes", cli.FormatMinutes(r.TotalMinutes)},
					{"Daily capacity", cli.FormatMinutes(r.DailyCapacityMinutes)},
					{"Completion", cli.FormatDays(r.CompletionDays) + " / " + cli.FormatMonths(r.CompletionMonths)},
					{"Adjusted operational cost", cli.FormatIDR(r.AdjustedOperationalCost)},
					{"Net revenue", cli.FormatIDR(r.NetRevenue)},
					{taxLabel(r.TaxAmount), cli.FormatIDR(r.TaxAmount)},
					{"After-tax revenue", cli.FormatIDR(r.AfterTaxRevenue)},
					{"Total investment", cli.FormatIDR(r.TotalInvestment)},
					{"ROI", cli.FormatPercent(r.ROI)},
				},
			},
		},
	}, nil
}

func (d Data) monthlyDoc() (Document, error) {
	rep, err := d.needReport(ViewMonthly)
	if err != nil {
		return Document{}, err
	}

	rows := make([][]string, 0, len(rep.Months)+1)
	for _, m := range rep.Months {
		rows = append(rows, []string{
			m.Label,
			cli.FormatIDR(m.Current),
			cli.FormatIDR(m.TaxedCurrent),
			cli.FormatIDR(m.Projected),
			cli.FormatIDR(m.Conservative),
		})
	}
	s := rep.Summary
	rows = append(rows, []string{"Total", cli.FormatIDR(s.TotalCurrent), "", cli.FormatIDR(s.TotalProjected), cli.FormatIDR(s.TotalConservative)})

	subtitle := rep.Scenario.Name
	if !rep.Clamped {
		subtitle += " (losses shown)"
	}
	return Document{
		Title:     "Monthly Projection",
		Subtitle:  subtitle,
		Generated: rep.GeneratedAt,
		Facts: []Fact{
			{"Average monthly", cli.FormatIDR(s.AverageMonthly)},
		},
		Tables: []Table{{
			Title:   "12-month projection",
			Headers: []string{"Month", "Current", "After tax", "Projected (+15%)", "Conservative (-15%)"},
			Rows:    rows,
		}},
	}, nil
}

func (d Data) dailyDoc() (Document, error) {
	rep, err := d.needReport(ViewDaily)
	if err != nil {
		return Document{}, err
	}
	days, err := rep.DailyFor(d.DailyMonth)
	if err != nil {
		return Document{}, err
	}

	rows := make([][]string, len(days))
	for i, e := range days {
		rows[i] = []string{
			strconv.Itoa(e.Day),
			cli.FormatIDR(e.DailyRevenue),
			cli.FormatIDR(e.CumulativeRevenue),
			cli.FormatIDR(e.Threshold),
			cli.FormatStatus(string(e.Status)),
		}
	}

	m := rep.Months[d.DailyMonth]
	return Document{
		Title:     "Daily Break-even",
		Subtitle:  fmt.Sprintf("%s, %s (month %d)", rep.Scenario.Name, m.Label, d.DailyMonth+1),
		Generated: rep.GeneratedAt,
		Facts: []Fact{
			{"Threshold", cli.FormatStatus(string(days[0].ThresholdType)) + " " + cli.FormatIDR(days[0].Threshold)},
		},
		Tables: []Table{{
			Title:   "Days",
			Headers: []string{"Day", "Revenue", "Cumulative", "Threshold", "Status"},
			Rows:    rows,
		}},
	}, nil
}

func (d Data) comparisonDoc() (Document, error) {
	if len(d.Comparison) == 0 {
		return Document{}, fmt.Errorf("view %q needs comparison rows", ViewComparison)
	}

	rows := make([][]string, len(d.Comparison))
	for i, c := range d.Comparison {
		name := c.Name
		if c.Current {
			name += " *"
		}
		if c.Err != "" {
			rows[i] = []string{name, "error: " + c.Err, "", "", ""}
			continue
		}
		rows[i] = []string{
			name,
			cli.FormatIDR(c.GrossRevenue),
			cli.FormatIDR(c.NetRevenue),
			cli.FormatPercent(c.ROI),
			cli.FormatDays(c.CompletionDays),
		}
	}

	return Document{
		Title:     "Scenario Comparison",
		Subtitle:  "* current parameters",
		Generated: d.now(),
		Tables: []Table{{
			Title:   "Scenarios",
			Headers: []string{"Scenario", "Gross", "Net", "ROI", "Completion"},
			Rows:    rows,
		}},
	}, nil
}

func yearHeaders(first string, years int, last string) []string {
	h := []string{first}
	for y := 1; y <= years; y++ {
		h = append(h, fmt.Sprintf("Year %d", y))
	}
	return append(h, last)
}

func (d Data) lokalAIDoc() (Document, error) {
	lp := d.LokalAI
	if lp == nil {
		return Document{}, fmt.Errorf("view %q needs a LokalAI projection", ViewLokalAI)
	}

	tiers := make([][]string, len(lp.Tiers))
	for i, tp := range lp.Tiers {
		tiers[i] = []string{
			tp.Tier.Name,
			cli.FormatIDR(tp.Tier.SoftwarePrice),
			cli.FormatIDR(tp.Tier.BundlingPrice),
			strconv.FormatFloat(tp.Tier.TargetUsers, 'f', -1, 64),
		}
	}

	plan := func(name string, byYear []float64, total float64) []string {
		row := []string{name}
		for _, v := range byYear {
			row = append(row, cli.FormatIDR(v))
		}
		return append(row, cli.FormatIDR(total))
	}

	return Document{
		Title:     "LokalAI Licensing",
		Subtitle:  fmt.Sprintf("%d-year projection", lp.Years),
		Generated: d.now(),
		Facts: []Fact{
			{"Total users", strconv.FormatFloat(lp.TotalUsers, 'f', -1, 64)},
			{"Average software price", cli.FormatIDR(lp.AverageSoftwarePrice)},
		},
		Tables: []Table{
			{
				Title:   "Tiers",
				Headers: []string{"Tier", "Software / year", "Bundling (year 1)", "Users"},
				Rows:    tiers,
			},
			{
				Title:   "Revenue by plan",
				Headers: yearHeaders("Plan", lp.Years, "Total"),
				Rows: [][]string{
					plan("Software only", lp.SoftwareOnlyByYear, lp.SoftwareOnlyTotal),
					plan("Bundling", lp.BundlingByYear, lp.BundlingTotal),
				},
			},
		},
	}, nil
}

func (d Data) liveAudioDoc() (Document, error) {
	la := d.LiveAudio
	if la == nil {
		return Document{}, fmt.Errorf("view %q needs live-audio results", ViewLiveAudio)
	}
	p, r := la.Params, la.Results

	return Document{
		Title:     "Live Audio B2C",
		Generated: d.now(),
		Tables: []Table{
			{
				Title:   "Package",
				Headers: []string{"Parameter", "Value"},
				Rows: [][]string{
					{"Base price per minute", cli.FormatIDR(p.BasePricePerMinute)},
					{"Selling price per minute", cli.FormatIDR(p.PricePerMinute)},
					{"Deposit per user", cli.FormatIDR(p.DepositAmount)},
					{"Target users", cli.FormatNumber(int64(p.TargetUsers))},
					{"Operational cost", cli.FormatIDR(p.OperationalCost)},
				},
			},
			{
				Title:   "Results",
				Headers: []string{"Metric", "Value"},
				Rows: [][]string{
					{"Total deposit", cli.FormatIDR(r.TotalDeposit)},
					{"Estimated minutes", cli.FormatMinutes(r.EstimatedMinutes)},
					{"Cost to serve", cli.FormatIDR(r.CostToServe)},
					{"Gross margin", cli.FormatIDR(r.GrossMargin)},
					{"Net revenue", cli.FormatIDR(r.NetRevenue)},
					{"ROI", cli.FormatPercent(r.ROI)},
					{"Margin per minute", cli.FormatIDR(r.MarginPerMinute) + " (" + cli.FormatPercent(r.MarginPercent) + ")"},
				},
			},
		},
	}, nil
}

func (d Data) investorDoc() (Document, error) {
	inv := d.Investor
	if inv == nil {
		return Document{}, fmt.Errorf("view %q needs an investor report", ViewInvestor)
	}
	pf := inv.Portfolio
	years := len(pf.Combined)

	var revenueRows, profitRows [][]string
	addRow := func(name string, ys []revenue.YearProjection, roi string) {
		rev, prof := []string{name}, []string{name}
		for _, y := range ys {
			rev = append(rev, cli.FormatIDRCompact(y.Revenue))
			prof = append(prof, cli.FormatIDRCompact(y.Profit))
		}
		revenueRows = append(revenueRows, rev)
		profitRows = append(profitRows, append(prof, roi))
	}
	for _, l := range pf.Lines {
		addRow(l.Line.Name, l.Years, cli.FormatPercent(l.ROI))
	}
	addRow("Combined", pf.Combined, cli.FormatPercent(pf.ROI))

	revHeaders := yearHeaders("Line", years, "")
	return Document{
		Title:     "Investor Projection",
		Subtitle:  "Telemarketing from " + inv.Telemarketing.Name,
		Generated: d.now(),
		Facts: []Fact{
			{"Combined year-one revenue", cli.FormatIDR(pf.Combined[0].Revenue)},
			{"Portfolio ROI", cli.FormatPercent(pf.ROI)},
		},
		Tables: []Table{
			{Title: "Revenue", Headers: revHeaders[:len(revHeaders)-1], Rows: revenueRows},
			{Title: "Profit", Headers: yearHeaders("Line", years, "ROI (year 1)"), Rows: profitRows},
		},
	}, nil
}
