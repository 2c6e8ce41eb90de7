package cmd

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"

	"github.com/spf13/cobra"
)

var flagGrowth float64

var investorCmd = &cobra.Command{
	Use:   "investor",
	Short: "Multi-year portfolio: telemarketing, live audio and LokalAI",
	RunE:  runInvestor,
}

func init() {
	investorCmd.Flags().Float64Var(&flagGrowth, "growth", 0, "Yearly growth in percent (default from config)")
	investorCmd.Flags().IntVar(&flagYears, "years", 0, "Years to project (default from config)")
	rootCmd.AddCommand(investorCmd)
}

// investorInputs collects the non-telemarketing assumptions from config
// and flags.
func investorInputs(cmd *cobra.Command) pipeline.InvestorInputs {
	growth := appConfig.Projection.GrowthPercent
	if cmd.Flags().Changed("growth") {
		growth = flagGrowth
	}
	return pipeline.InvestorInputs{
		GrowthPercent:      growth,
		Years:              projectionYears(),
		Tiers:              config.Tiers(appConfig),
		LokalAIOneTime:     appConfig.LokalAI.OneTimeCost,
		LokalAIOperational: appConfig.LokalAI.OperationalCost,
		LiveAudio:          config.LiveAudio(appConfig),
		LiveAudioOneTime:   appConfig.LiveAudio.OneTimeCost,
	}
}

func runInvestor(cmd *cobra.Command, _ []string) error {
	tele, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	in := investorInputs(cmd)
	inv, err := pipeline.Investor(tele, in)
	if err != nil {
		return err
	}
	pf := inv.Portfolio

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INVESTOR PROJECTION  %s", tele.Name)))
	fmt.Println()

	headers := []string{"Line"}
	for _, y := range pf.Combined {
		headers = append(headers, y.Label)
	}

	rowsFor := func(value func(revenue.YearProjection) float64) [][]string {
		rows := make([][]string, 0, len(pf.Lines)+2)
		add := func(name string, ys []revenue.YearProjection) {
			row := []string{name}
			for _, y := range ys {
				row = append(row, cli.FormatIDRCompact(value(y)))
			}
			rows = append(rows, row)
		}
		for _, l := range pf.Lines {
			add(l.Line.Name, l.Years)
		}
		rows = append(rows, cli.Separator)
		add("Combined", pf.Combined)
		return rows
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Revenue",
		Headers: headers,
		Rows:    rowsFor(func(y revenue.YearProjection) float64 { return y.Revenue }),
	}))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Profit",
		Headers: headers,
		Rows:    rowsFor(func(y revenue.YearProjection) float64 { return y.Profit }),
	}))
	fmt.Println()

	for _, l := range pf.Lines {
		fmt.Printf("  %-14s ROI %s\n", l.Line.Name, cli.Percent(l.ROI))
	}
	fmt.Printf("  %-14s ROI %s\n", "Portfolio", cli.Percent(pf.ROI))
	fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("Growth %s per year; the telemarketing campaign repeats back to back",
		cli.FormatPercent(in.GrowthPercent))))
	return nil
}
