package cmd

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagCompareDir string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the active scenario against every other scenario",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagCompareDir, "dir", "", "Also compare scenario files found in this directory")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	current, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	cat, done := openCatalog()
	defer done()
	others, err := cat.List()
	if err != nil {
		return err
	}

	if flagCompareDir != "" {
		loaded, err := pipeline.LoadDir(flagCompareDir, progressFunc("Reading scenario files"))
		if err != nil {
			return err
		}
		for _, e := range loaded.Errors {
			commandLogger(cmd).Warn().Err(e).Msg("skipping scenario file")
		}
		others = append(others, loaded.Scenarios...)
	}

	rows := pipeline.Compare(current, others)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIO COMPARISON"))
	fmt.Println()

	table := make([][]string, 0, len(rows)+1)
	for i, r := range rows {
		name := r.Name
		if r.Current {
			name = "▸ " + name
		}
		if r.Err != "" {
			table = append(table, []string{name, string(r.Source), cli.Warn(r.Err), "", "", ""})
			continue
		}
		table = append(table, []string{
			name,
			string(r.Source),
			cli.FormatIDRCompact(r.GrossRevenue),
			cli.Money(r.AfterTaxRevenue),
			cli.Percent(r.ROI),
			cli.FormatDays(r.CompletionDays),
		})
		if i == 0 && len(rows) > 1 {
			table = append(table, cli.Separator)
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Scenario", "Source", "Gross", "After tax", "ROI", "Completion"},
		Rows:     table,
		LeftCols: 2,
	}))
	fmt.Println()
	return nil
}
