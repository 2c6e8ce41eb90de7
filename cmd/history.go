package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revcalc/internal/cli"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded calculations (see calc --record)",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Max runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	runs, err := st.ListRuns(flagScenario, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\n  No recorded runs. Use `revcalc calc --record` to add one.")
		return nil
	}
	total, err := st.RunCount()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUN HISTORY  %d of %d", len(runs), total)))
	fmt.Println()

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("#%d", r.ID),
			r.At.Local().Format(time.DateTime),
			r.ScenarioName,
			cli.FormatIDRCompact(r.Results.GrossRevenue),
			cli.Money(r.Results.AfterTaxRevenue),
			cli.Percent(r.Results.ROI),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Run", "At", "Scenario", "Gross", "After tax", "ROI"},
		Rows:     rows,
		LeftCols: 3,
	}))
	fmt.Println()
	return nil
}
