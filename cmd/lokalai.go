package cmd

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/revenue"

	"github.com/spf13/cobra"
)

var flagYears int

var lokalaiCmd = &cobra.Command{
	Use:   "lokalai",
	Short: "LokalAI license revenue by tier, software-only vs bundling",
	RunE:  runLokalAI,
}

func init() {
	lokalaiCmd.Flags().IntVar(&flagYears, "years", 0, "Years to project (default from config)")
	rootCmd.AddCommand(lokalaiCmd)
}

func projectionYears() int {
	if flagYears > 0 {
		return flagYears
	}
	if appConfig.Projection.Years > 0 {
		return appConfig.Projection.Years
	}
	return config.DefaultConfig().Projection.Years
}

func runLokalAI(_ *cobra.Command, _ []string) error {
	years := projectionYears()
	lp, err := revenue.ProjectLokalAI(config.Tiers(appConfig), years)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LOKALAI LICENSING  %d years", years)))
	fmt.Println()

	headers := []string{"Tier", "Users", "Software/yr", "Bundling"}
	for y := 1; y <= years; y++ {
		headers = append(headers, fmt.Sprintf("Y%d soft", y), fmt.Sprintf("Y%d bundle", y))
	}

	rows := make([][]string, 0, len(lp.Tiers)+2)
	for _, tp := range lp.Tiers {
		row := []string{
			tp.Tier.Name,
			cli.FormatNumber(int64(tp.Tier.TargetUsers)),
			cli.FormatIDRCompact(tp.Tier.SoftwarePrice),
			cli.FormatIDRCompact(tp.Tier.BundlingPrice),
		}
		for y := 0; y < years; y++ {
			row = append(row, cli.FormatIDRCompact(tp.SoftwareOnly[y]), cli.FormatIDRCompact(tp.Bundling[y]))
		}
		rows = append(rows, row)
	}

	total := []string{"Total", cli.FormatNumber(int64(lp.TotalUsers)), "", ""}
	for y := 0; y < years; y++ {
		total = append(total, cli.FormatIDRCompact(lp.SoftwareOnlyByYear[y]), cli.FormatIDRCompact(lp.BundlingByYear[y]))
	}
	rows = append(rows, cli.Separator, total)

	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))
	fmt.Println()

	fmt.Printf("  Software-only total: %s\n", cli.Money(lp.SoftwareOnlyTotal))
	fmt.Printf("  Bundling total:      %s\n", cli.Money(lp.BundlingTotal))
	fmt.Printf("  Avg software price:  %s per user\n", cli.FormatIDR(lp.AverageSoftwarePrice))
	fmt.Println()
	return nil
}
