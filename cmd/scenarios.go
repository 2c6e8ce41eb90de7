package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/revcalc/internal/cli"
	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"
	"github.com/theirongolddev/revcalc/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagScenarioFilter      string
	flagScenarioDescription string
)

var scenariosCmd = &cobra.Command{
	Use:     "scenarios",
	Aliases: []string{"scenario"},
	Short:   "List, save and manage scenarios",
	RunE:    runScenariosList,
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets, config and saved scenarios",
	RunE:  runScenariosList,
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one scenario's parameters and headline results",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosShow,
}

var scenariosSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the active scenario (with any parameter flags) under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosSave,
}

var scenariosDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosDelete,
}

var scenariosImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Save every scenario file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosImport,
}

func init() {
	scenariosListCmd.Flags().StringVar(&flagScenarioFilter, "filter", "", "Only saved scenarios whose name contains this text")
	scenariosSaveCmd.Flags().StringVar(&flagScenarioDescription, "description", "", "Scenario description")

	scenariosCmd.AddCommand(scenariosListCmd, scenariosShowCmd, scenariosSaveCmd, scenariosDeleteCmd, scenariosImportCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func runScenariosList(_ *cobra.Command, _ []string) error {
	var list []model.Scenario
	if flagScenarioFilter != "" {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		list, err = st.ListScenarios(store.Filter{NameContains: flagScenarioFilter})
		if err != nil {
			return err
		}
	} else {
		cat, done := openCatalog()
		defer done()
		var err error
		list, err = cat.List()
		if err != nil {
			return err
		}
	}

	if len(list) == 0 {
		fmt.Println("\n  No scenarios found.")
		return nil
	}

	active := config.DefaultScenarioName(appConfig)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIOS"))
	fmt.Println()

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		name := s.Name
		if s.Name == active {
			name = "▸ " + name
		}
		roi := cli.Muted("n/a")
		if r, err := revenue.Compute(s.Params); err == nil {
			roi = cli.Percent(r.ROI)
		}
		rows = append(rows, []string{name, string(s.Source), cli.FormatNumber(int64(s.Params.TargetVolume)), roi, s.Description})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Name", "Source", "Target", "ROI", "Description"},
		Rows:     rows,
		LeftCols: 2,
	}))
	fmt.Println()
	return nil
}

func runScenariosShow(_ *cobra.Command, args []string) error {
	cat, done := openCatalog()
	defer done()
	sc, err := cat.Lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(sc.Name))
	fmt.Println()
	if sc.Description != "" {
		fmt.Printf("  %s\n\n", sc.Description)
	}
	fmt.Printf("  Source: %s\n", sc.Source)
	if sc.ID != "" {
		fmt.Printf("  ID:     %s\n", sc.ID)
	}
	fmt.Println()

	rows := paramRows(sc.Params)
	r, err := revenue.Compute(sc.Params)
	if err != nil {
		rows = append(rows, cli.Separator, []string{"Error", cli.Warn(err.Error())})
	} else {
		rows = append(rows, cli.Separator,
			[]string{"Gross revenue", cli.Money(r.GrossRevenue)},
			[]string{"After-tax revenue", cli.Money(r.AfterTaxRevenue)},
			[]string{"ROI", cli.Percent(r.ROI)},
		)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Parameter", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runScenariosSave(cmd *cobra.Command, args []string) error {
	sc, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sc.Name = args[0]
	sc.Source = model.SourceSaved
	if flagScenarioDescription != "" {
		sc.Description = flagScenarioDescription
	}
	saved, err := st.SaveScenario(sc)
	if err != nil {
		return err
	}

	commandLogger(cmd).Info().Str("id", saved.ID).Str("name", saved.Name).Msg("saved scenario")
	fmt.Printf("  Saved %q (%s)\n", saved.Name, saved.ID)
	return nil
}

func runScenariosDelete(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteScenario(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if _, ok := config.LookupScenario(appConfig, args[0]); ok {
				return fmt.Errorf("%q is a preset or config scenario and cannot be deleted", args[0])
			}
		}
		return err
	}
	fmt.Printf("  Deleted %q\n", args[0])
	return nil
}

func runScenariosImport(cmd *cobra.Command, args []string) error {
	loaded, err := pipeline.LoadDir(args[0], progressFunc("Parsing"))
	if err != nil {
		return err
	}
	if loaded.TotalFiles == 0 {
		fmt.Printf("\n  No .toml or .json scenario files in %s\n", args[0])
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	log := commandLogger(cmd)
	imported := 0
	for _, sc := range loaded.Scenarios {
		sc.Source = model.SourceSaved
		if _, err := st.SaveScenario(sc); err != nil {
			log.Warn().Err(err).Str("name", sc.Name).Msg("import failed")
			continue
		}
		imported++
	}
	for _, e := range loaded.Errors {
		fmt.Printf("  %s\n", cli.Warn(e.Error()))
	}

	fmt.Printf("  Imported %d of %d scenario files\n", imported, loaded.TotalFiles)
	return nil
}
