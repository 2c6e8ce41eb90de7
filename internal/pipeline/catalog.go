package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/store"
)

// ErrUnknownScenario is returned by Catalog.Lookup for names it cannot resolve.
var ErrUnknownScenario = errors.New("unknown scenario")

// Catalog resolves scenario names across saved scenarios, config.toml
// scenarios and the embedded presets, in that order. Store may be nil.
type Catalog struct {
	Config config.Config
	Store  *store.Store
}

// Lookup returns the scenario called name (case-insensitive).
func (c Catalog) Lookup(name string) (model.Scenario, error) {
	if c.Store != nil {
		s, err := c.Store.GetScenario(name)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return model.Scenario{}, err
		}
	}
	if s, ok := config.LookupScenario(c.Config, name); ok {
		return s, nil
	}
	return model.Scenario{}, fmt.Errorf("%w %q", ErrUnknownScenario, name)
}

// List returns every resolvable scenario: presets and config scenarios in
// file order, then saved scenarios sorted by name. A saved scenario hides
// a preset or config scenario with the same name.
func (c Catalog) List() ([]model.Scenario, error) {
	base := config.Scenarios(c.Config)
	if c.Store == nil {
		return base, nil
	}

	saved, err := c.Store.ListScenarios(store.Filter{})
	if err != nil {
		return nil, err
	}
	hidden := make(map[string]bool, len(saved))
	for _, s := range saved {
		hidden[strings.ToLower(s.Name)] = true
	}

	out := make([]model.Scenario, 0, len(base)+len(saved))
	for _, s := range base {
		if !hidden[strings.ToLower(s.Name)] {
			out = append(out, s)
		}
	}
	sort.SliceStable(saved, func(i, j int) bool { return saved[i].Name < saved[j].Name })
	return append(out, saved...), nil
}
