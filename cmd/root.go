// Package cmd implements the revcalc CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/logging"
	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"
	"github.com/theirongolddev/revcalc/internal/source"
	"github.com/theirongolddev/revcalc/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagScenario   string
	flagFile       string
	flagNoClamp    bool
	flagStartMonth int
	flagQuiet      bool
	flagLogLevel   string
	flagLogJSON    bool
)

// Loaded once per invocation by loadEnvironment.
var (
	appConfig = config.DefaultConfig()
	logger    = logging.Nop()
)

// paramFlag binds a --flag to one field of revenue.Params.
type paramFlag struct {
	name  string
	usage string
	field func(p *revenue.Params) *float64
	value float64
}

var paramFlags = []*paramFlag{
	{name: "duration", usage: "Call duration in minutes", field: func(p *revenue.Params) *float64 { return &p.CallDurationMinutes }},
	{name: "target", usage: "Target call volume", field: func(p *revenue.Params) *float64 { return &p.TargetVolume }},
	{name: "price", usage: "Price per minute (IDR)", field: func(p *revenue.Params) *float64 { return &p.PricePerMinute }},
	{name: "hours", usage: "Operating hours per day", field: func(p *revenue.Params) *float64 { return &p.HoursPerDay }},
	{name: "channels", usage: "Concurrent channels", field: func(p *revenue.Params) *float64 { return &p.Channels }},
	{name: "one-time", usage: "One-time purchase cost (IDR)", field: func(p *revenue.Params) *float64 { return &p.OneTimePurchaseCost }},
	{name: "op-cost", usage: "Yearly operational cost (IDR)", field: func(p *revenue.Params) *float64 { return &p.OperationalCostPerPeriod }},
	{name: "tax", usage: "Tax rate in percent", field: func(p *revenue.Params) *float64 { return &p.TaxRatePercent }},
}

var rootCmd = &cobra.Command{
	Use:               "revcalc",
	Short:             "Revenue and ROI calculator",
	Long:              "Project revenue, break-even and ROI for call-volume business scenarios.",
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
	RunE:              runCalc,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagScenario, "scenario", "s", "", "Scenario name (default from config)")
	pf.StringVarP(&flagFile, "file", "f", "", "Read the scenario from a .toml or .json file")
	pf.BoolVar(&flagNoClamp, "no-clamp", false, "Report negative monthly revenue instead of flooring it at 0")
	pf.IntVar(&flagStartMonth, "start-month", 0, "First projected month, 1-12 (default: current month)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagLogJSON, "log-json", false, "Emit logs as JSON")

	for _, f := range paramFlags {
		pf.Float64Var(&f.value, f.name, 0, f.usage)
	}
}

func loadEnvironment(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	level := flagLogLevel
	if level == "" {
		level = config.LogLevel(cfg)
	}
	format := logging.FormatConsole
	if flagLogJSON {
		format = logging.FormatJSON
	}
	logger = logging.New(level, format, os.Stderr)
	return nil
}

// openCatalog opens the scenario store. When the store is unavailable the
// catalog still resolves presets and config scenarios.
func openCatalog() (pipeline.Catalog, func()) {
	st, err := store.Open(pipeline.DataPath())
	if err != nil {
		logger.Warn().Err(err).Str("path", pipeline.DataPath()).Msg("scenario store unavailable")
		return pipeline.Catalog{Config: appConfig}, func() {}
	}
	return pipeline.Catalog{Config: appConfig, Store: st}, func() { _ = st.Close() }
}

// openStore opens the scenario store for commands that cannot work without it.
func openStore() (*store.Store, error) {
	st, err := store.Open(pipeline.DataPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return st, nil
}

// resolveScenario picks the scenario from --file or --scenario (falling back
// to the configured default) and applies any parameter flags on top.
func resolveScenario(cmd *cobra.Command) (model.Scenario, error) {
	var (
		sc  model.Scenario
		err error
	)
	if flagFile != "" {
		sc, err = source.ParseFile(flagFile)
		if err != nil {
			return model.Scenario{}, err
		}
	} else {
		name := flagScenario
		if name == "" {
			name = config.DefaultScenarioName(appConfig)
		}
		cat, done := openCatalog()
		defer done()
		sc, err = cat.Lookup(name)
		if err != nil {
			return model.Scenario{}, err
		}
	}

	if applyParamOverrides(cmd, &sc.Params) {
		sc.Source = model.SourceCustom
		sc.ID = ""
	}
	logger.Debug().Str("scenario", sc.Name).Str("source", string(sc.Source)).Msg("resolved scenario")
	return sc, nil
}

// applyParamOverrides copies every parameter flag the user set into p and
// reports whether any was set.
func applyParamOverrides(cmd *cobra.Command, p *revenue.Params) bool {
	changed := false
	for _, f := range paramFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		*f.field(p) = f.value
		changed = true
	}
	return changed
}

func clampEnabled() bool {
	return appConfig.Projection.Clamp && !flagNoClamp
}

func reportOptions(includeDaily bool) pipeline.Options {
	return pipeline.Options{
		Clamp:        clampEnabled(),
		StartMonth:   time.Month(flagStartMonth),
		IncludeDaily: includeDaily,
	}
}

// buildReport resolves the active scenario and runs it.
func buildReport(cmd *cobra.Command, includeDaily bool) (*pipeline.Report, error) {
	sc, err := resolveScenario(cmd)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(sc, reportOptions(includeDaily))
}

func progressFunc(label string) pipeline.ProgressFunc {
	return func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  %s [%d/%d]", label, current, total)
		if current == total {
			fmt.Fprintln(os.Stderr)
		}
	}
}

// commandLogger tags log lines with the running subcommand.
func commandLogger(cmd *cobra.Command) zerolog.Logger {
	return logger.With().Str("cmd", cmd.Name()).Logger()
}
