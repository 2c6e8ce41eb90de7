package cmd

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/revenue"

	"github.com/spf13/cobra"
)

var flagDailyMonth int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day break-even breakdown for one projected month",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDailyMonth, "month", "m", 1, "Projected month to break down, 1-12")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	if flagDailyMonth < 1 || flagDailyMonth > 12 {
		return fmt.Errorf("--month must be between 1 and 12, got %d", flagDailyMonth)
	}

	rep, err := buildReport(cmd, false)
	if err != nil {
		return err
	}
	days, err := rep.DailyFor(flagDailyMonth - 1)
	if err != nil {
		return err
	}

	month := rep.Months[flagDailyMonth-1]
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY BREAKDOWN  %s  %s", rep.Scenario.Name, month.Label)))
	fmt.Println()

	threshold := "operational cost"
	if len(days) > 0 && days[0].ThresholdType == revenue.TotalInvestment {
		threshold = "total investment (one-time + operational)"
	}
	fmt.Printf("  Threshold: %s %s\n\n", cli.FormatIDR(thresholdOf(days)), cli.Muted(threshold))

	rows := make([][]string, 0, len(days))
	firstCovered := -1
	for _, d := range days {
		if firstCovered < 0 && d.Status != revenue.Loss {
			firstCovered = d.Day
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Day),
			cli.Money(d.DailyRevenue),
			cli.Money(d.CumulativeRevenue),
			cli.Status(string(d.Status)),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Daily", "Cumulative", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	if firstCovered > 0 {
		fmt.Printf("  Threshold covered on day %d of %s\n\n", firstCovered, month.Label)
	} else {
		fmt.Printf("  %s\n\n", cli.Warn("Threshold not covered this month"))
	}
	return nil
}

func thresholdOf(days []revenue.DailyEntry) float64 {
	if len(days) == 0 {
		return 0
	}
	return days[0].Threshold
}
