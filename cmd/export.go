package cmd

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/theirongolddev/revcalc/internal/export"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"

	"github.com/spf13/cobra"
)

var flagExportMonth int

var exportCmd = &cobra.Command{
	Use:   "export <view> <file>",
	Short: "Export a view to .md, .html, .csv, .json or .pdf",
	Long: "Export a view of the active scenario. Views: " + strings.Join(export.Views, ", ") + ".\n" +
		"The format is chosen by the file extension. Relative paths are placed in\n" +
		"the configured export directory when one is set.",
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVarP(&flagExportMonth, "month", "m", 1, "Projected month for the daily view, 1-12")
	exportCmd.Flags().IntVar(&flagYears, "years", 0, "Years for the lokalai and investor views (default from config)")
	exportCmd.Flags().Float64Var(&flagGrowth, "growth", 0, "Yearly growth for the investor view (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	view, filename := strings.ToLower(args[0]), args[1]
	if !slices.Contains(export.Views, view) {
		return fmt.Errorf("unknown view %q (use one of: %s)", view, strings.Join(export.Views, ", "))
	}
	if _, err := export.FormatFromPath(filename); err != nil {
		return err
	}
	if !filepath.IsAbs(filename) && appConfig.Export.Dir != "" {
		filename = filepath.Join(appConfig.Export.Dir, filename)
	}

	data, err := exportData(cmd, view)
	if err != nil {
		return err
	}

	if err := export.New(data, commandLogger(cmd)).Export(view, filename); err != nil {
		return err
	}
	fmt.Printf("  Exported %s to %s\n", view, filename)
	return nil
}

// exportData computes only what view needs.
func exportData(cmd *cobra.Command, view string) (export.Data, error) {
	var data export.Data

	switch view {
	case export.ViewSummary, export.ViewMonthly, export.ViewDaily:
		rep, err := buildReport(cmd, false)
		if err != nil {
			return data, err
		}
		data.Report = rep
		data.DailyMonth = flagExportMonth - 1

	case export.ViewComparison:
		current, err := resolveScenario(cmd)
		if err != nil {
			return data, err
		}
		cat, done := openCatalog()
		defer done()
		others, err := cat.List()
		if err != nil {
			return data, err
		}
		data.Comparison = pipeline.Compare(current, others)

	case export.ViewLokalAI:
		lp, err := revenue.ProjectLokalAI(investorInputs(cmd).Tiers, projectionYears())
		if err != nil {
			return data, err
		}
		data.LokalAI = &lp

	case export.ViewLiveAudio:
		p := liveAudioParams(cmd)
		r, err := revenue.ComputeLiveAudio(p)
		if err != nil {
			return data, err
		}
		data.LiveAudio = &export.LiveAudio{Params: p, Results: r}

	case export.ViewInvestor:
		tele, err := resolveScenario(cmd)
		if err != nil {
			return data, err
		}
		inv, err := pipeline.Investor(tele, investorInputs(cmd))
		if err != nil {
			return data, err
		}
		data.Investor = inv
	}
	return data, nil
}
