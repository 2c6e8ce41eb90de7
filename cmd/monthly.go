package cmd

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/cli"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "12-month revenue projection",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	rep, err := buildReport(cmd, false)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY PROJECTION  %s", rep.Scenario.Name)))
	fmt.Println()

	rows := make([][]string, 0, len(rep.Months)+2)
	for _, m := range rep.Months {
		current := cli.Money(m.Current)
		if m.Clamped {
			current = cli.Muted(cli.FormatIDR(m.Current) + "*")
		}
		rows = append(rows, []string{
			m.Label,
			cli.FormatIDRCompact(m.GrossShare),
			cli.FormatIDRCompact(m.Deducted),
			current,
			cli.Money(m.TaxedCurrent),
			cli.Money(m.Projected),
			cli.Money(m.Conservative),
		})
	}
	rows = append(rows, cli.Separator, []string{
		"Total", "", "",
		cli.Money(rep.Summary.TotalCurrent),
		"",
		cli.Money(rep.Summary.TotalProjected),
		cli.Money(rep.Summary.TotalConservative),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Gross", "Costs", "Current", "After tax", "Optimistic", "Conservative"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Printf("  Average monthly: %s\n", cli.Money(rep.Summary.AverageMonthly))
	fmt.Printf("  Break-even:      %s\n", breakEvenText(rep.Summary))
	fmt.Printf("  Trend:           %s  %s\n", cli.RenderSparkline(currentSeries(rep)), clampNote(rep))
	for _, m := range rep.Months {
		if m.Clamped {
			fmt.Printf("  %s\n", cli.Muted("* negative revenue floored at 0; rerun with --no-clamp to see losses"))
			break
		}
	}
	fmt.Println()
	return nil
}
