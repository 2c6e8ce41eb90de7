package config

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/revcalc/internal/model"
)

//go:embed presets.toml
var presetsTOML []byte

type presetFile struct {
	Version int              `toml:"version"`
	Presets []ScenarioConfig `toml:"preset"`
}

var loadPresets = sync.OnceValues(func() ([]model.Scenario, error) {
	return parsePresets(presetsTOML)
})

func parsePresets(data []byte) ([]model.Scenario, error) {
	var pf presetFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	seen := make(map[string]bool, len(pf.Presets))
	out := make([]model.Scenario, 0, len(pf.Presets))
	for _, p := range pf.Presets {
		key := strings.ToLower(p.Name)
		if p.Name == "" || seen[key] {
			return nil, fmt.Errorf("presets: empty or duplicate name %q", p.Name)
		}
		seen[key] = true
		out = append(out, model.Scenario{
			Name:        p.Name,
			Description: p.Description,
			Source:      model.SourcePreset,
			Params:      p.Params,
		})
	}
	return out, nil
}

// Presets returns the embedded reference scenarios in file order.
func Presets() []model.Scenario {
	presets, err := loadPresets()
	if err != nil {
		// The file is compiled in; a parse failure is a build defect.
		panic(err)
	}
	out := make([]model.Scenario, len(presets))
	copy(out, presets)
	return out
}

// Scenarios returns the presets followed by config scenarios. A config
// scenario replaces a preset with the same (case-insensitive) name.
func Scenarios(cfg Config) []model.Scenario {
	all := Presets()
	index := make(map[string]int, len(all))
	for i, s := range all {
		index[strings.ToLower(s.Name)] = i
	}

	for _, sc := range cfg.Scenarios {
		s := model.Scenario{
			Name:        sc.Name,
			Description: sc.Description,
			Source:      model.SourceConfig,
			Params:      sc.Params,
		}
		if i, ok := index[strings.ToLower(sc.Name)]; ok {
			all[i] = s
			continue
		}
		index[strings.ToLower(sc.Name)] = len(all)
		all = append(all, s)
	}
	return all
}

// LookupScenario finds a scenario by case-insensitive name.
func LookupScenario(cfg Config, name string) (model.Scenario, bool) {
	for _, s := range Scenarios(cfg) {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return model.Scenario{}, false
}

// ScenarioNames returns sorted scenario names, for completion and help.
func ScenarioNames(cfg Config) []string {
	all := Scenarios(cfg)
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	sort.Strings(names)
	return names
}
