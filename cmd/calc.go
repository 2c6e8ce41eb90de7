package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"

	"github.com/spf13/cobra"
)

var flagRecord bool

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate revenue, completion time and ROI for a scenario",
	RunE:  runCalc,
}

func init() {
	calcCmd.Flags().BoolVar(&flagRecord, "record", false, "Save this calculation to the run history")
	rootCmd.Flags().BoolVar(&flagRecord, "record", false, "Save this calculation to the run history")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	rep, err := buildReport(cmd, false)
	if err != nil {
		return err
	}

	p, r := rep.Scenario.Params, rep.Results

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REVENUE  %s", rep.Scenario.Name)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Parameters",
		Headers: []string{"Parameter", "Value"},
		Rows:    paramRows(p),
	}))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Results",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Gross revenue", cli.Money(r.GrossRevenue)},
			{"Total minutes", cli.FormatMinutes(r.TotalMinutes)},
			{"Daily capacity", cli.FormatMinutes(r.DailyCapacityMinutes)},
			{"Completion", cli.FormatDays(r.CompletionDays) + " / " + cli.FormatMonths(r.CompletionMonths)},
			cli.Separator,
			{"Adjusted operational cost", cli.Money(r.AdjustedOperationalCost)},
			{"One-time purchase cost", cli.Money(p.OneTimePurchaseCost)},
			{"Total investment", cli.Money(r.TotalInvestment)},
			cli.Separator,
			{"Net revenue", cli.Money(r.NetRevenue)},
			{taxLabel(r.TaxAmount), cli.Money(r.TaxAmount)},
			{"After-tax revenue", cli.Money(r.AfterTaxRevenue)},
			{"ROI", cli.Percent(r.ROI)},
		},
	}))
	fmt.Println()

	fmt.Printf("  Break-even: %s\n", breakEvenText(rep.Summary))
	fmt.Printf("  Monthly:    %s  %s\n", cli.RenderSparkline(currentSeries(rep)), clampNote(rep))
	fmt.Println()

	if flagRecord {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		run, err := st.RecordRun(rep.Scenario.Name, p, r)
		if err != nil {
			return err
		}
		commandLogger(cmd).Info().Int64("run", run.ID).Str("scenario", run.ScenarioName).Msg("recorded run")
		if !flagQuiet {
			fmt.Printf("  Recorded as run #%d\n\n", run.ID)
		}
	}
	return nil
}

func paramRows(p revenue.Params) [][]string {
	return [][]string{
		{"Call duration", strconv.FormatFloat(p.CallDurationMinutes, 'f', -1, 64) + " min"},
		{"Target volume", cli.FormatNumber(int64(p.TargetVolume)) + " calls"},
		{"Price per minute", cli.FormatIDR(p.PricePerMinute)},
		{"Hours per day", strconv.FormatFloat(p.HoursPerDay, 'f', -1, 64)},
		{"Channels", strconv.FormatFloat(p.Channels, 'f', -1, 64)},
		{"One-time purchase cost", cli.FormatIDR(p.OneTimePurchaseCost)},
		{"Operational cost (yearly)", cli.FormatIDR(p.OperationalCostPerPeriod)},
		{"Tax rate", cli.FormatPercent(p.TaxRatePercent)},
	}
}

func taxLabel(tax float64) string {
	if tax < 0 {
		return "Tax (credit)"
	}
	return "Tax"
}

func breakEvenText(s revenue.Summary) string {
	if s.BreakEvenMonth < 0 {
		return cli.Warn("not within 12 months")
	}
	return fmt.Sprintf("%s (month %d)", s.BreakEvenLabel, s.BreakEvenMonth+1)
}

func currentSeries(rep *pipeline.Report) []float64 {
	out := make([]float64, len(rep.Months))
	for i, m := range rep.Months {
		out[i] = m.Current
	}
	return out
}

func clampNote(rep *pipeline.Report) string {
	if rep.Clamped {
		return cli.Muted("(negative months floored at 0)")
	}
	return cli.Muted("(unclamped)")
}
