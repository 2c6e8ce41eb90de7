package cmd

import (
	"fmt"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/revenue"

	"github.com/spf13/cobra"
)

var flagLiveAudio revenue.LiveAudioParams

var liveaudioCmd = &cobra.Command{
	Use:   "liveaudio",
	Short: "Live-audio B2C deposit economics",
	RunE:  runLiveAudio,
}

func init() {
	f := liveaudioCmd.Flags()
	f.Float64Var(&flagLiveAudio.BasePricePerMinute, "base-price", 0, "Cost to serve one minute (IDR)")
	f.Float64Var(&flagLiveAudio.PricePerMinute, "sell-price", 0, "Selling price per minute (IDR)")
	f.Float64Var(&flagLiveAudio.DepositAmount, "deposit", 0, "Deposit per user (IDR)")
	f.Float64Var(&flagLiveAudio.TargetUsers, "users", 0, "Target users")
	f.Float64Var(&flagLiveAudio.OperationalCost, "la-op-cost", 0, "Operational cost (IDR)")
	rootCmd.AddCommand(liveaudioCmd)
}

// liveAudioParams returns the configured package with any flags applied.
func liveAudioParams(cmd *cobra.Command) revenue.LiveAudioParams {
	p := config.LiveAudio(appConfig)
	set := func(name string, dst *float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("base-price", &p.BasePricePerMinute, flagLiveAudio.BasePricePerMinute)
	set("sell-price", &p.PricePerMinute, flagLiveAudio.PricePerMinute)
	set("deposit", &p.DepositAmount, flagLiveAudio.DepositAmount)
	set("users", &p.TargetUsers, flagLiveAudio.TargetUsers)
	set("la-op-cost", &p.OperationalCost, flagLiveAudio.OperationalCost)
	return p
}

func runLiveAudio(cmd *cobra.Command, _ []string) error {
	p := liveAudioParams(cmd)
	r, err := revenue.ComputeLiveAudio(p)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LIVE AUDIO B2C"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Base price per minute", cli.FormatIDR(p.BasePricePerMinute)},
			{"Selling price per minute", cli.FormatIDR(p.PricePerMinute)},
			{"Deposit per user", cli.FormatIDR(p.DepositAmount)},
			{"Target users", cli.FormatNumber(int64(p.TargetUsers))},
			{"Operational cost", cli.FormatIDR(p.OperationalCost)},
			cli.Separator,
			{"Total deposit", cli.Money(r.TotalDeposit)},
			{"Estimated minutes", cli.FormatMinutes(r.EstimatedMinutes)},
			{"Cost to serve", cli.Money(r.CostToServe)},
			{"Gross margin", cli.Money(r.GrossMargin)},
			{"Net revenue", cli.Money(r.NetRevenue)},
			{"ROI", cli.Percent(r.ROI)},
			cli.Separator,
			{"Margin per minute", cli.Money(r.MarginPerMinute)},
			{"Margin", cli.Percent(r.MarginPercent)},
		},
	}))
	fmt.Println()
	return nil
}
