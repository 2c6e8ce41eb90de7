package config

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

func TestPresets_FixtureValues(t *testing.T) {
	presets := Presets()
	if len(presets) != 7 {
		t.Fatalf("len(Presets) = %d, want 7", len(presets))
	}

	s, ok := LookupScenario(DefaultConfig(), "300k calls")
	if !ok {
		t.Fatal("LookupScenario(300k calls) not found")
	}
	want := revenue.Params{
		CallDurationMinutes:      3,
		TargetVolume:             300_000,
		PricePerMinute:           450,
		HoursPerDay:              12,
		Channels:                 48,
		OneTimePurchaseCost:      177_000_000,
		OperationalCostPerPeriod: 91_942_620,
		TaxRatePercent:           11,
	}
	if s.Params != want {
		t.Fatalf("300K Calls params = %+v, want %+v", s.Params, want)
	}
	if s.Source != model.SourcePreset {
		t.Fatalf("Source = %s, want preset", s.Source)
	}
}

func TestPresets_AllCompute(t *testing.T) {
	for _, s := range Presets() {
		if _, err := revenue.Compute(s.Params); err != nil {
			t.Errorf("preset %q: %v", s.Name, err)
		}
	}
}

func TestPresets_ReturnsCopy(t *testing.T) {
	a := Presets()
	a[0].Name = "mutated"
	if Presets()[0].Name == "mutated" {
		t.Fatal("Presets exposes its cached slice")
	}
}

func TestParsePresets_RejectsDuplicates(t *testing.T) {
	data := []byte(`
[[preset]]
name = "A"
[[preset]]
name = "a"
`)
	if _, err := parsePresets(data); err == nil {
		t.Fatal("parsePresets accepted duplicate names")
	}
}

func TestScenarios_ConfigOverridesPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenarios = []ScenarioConfig{
		{Name: "Starter", Params: revenue.Params{CallDurationMinutes: 5, Channels: 1, HoursPerDay: 1}},
		{Name: "Pilot", Params: revenue.Params{CallDurationMinutes: 2, Channels: 2, HoursPerDay: 8}},
	}

	all := Scenarios(cfg)
	if len(all) != len(Presets())+1 {
		t.Fatalf("len = %d, want %d", len(all), len(Presets())+1)
	}

	s, _ := LookupScenario(cfg, "starter")
	if s.Source != model.SourceConfig || s.Params.CallDurationMinutes != 5 {
		t.Fatalf("Starter = %+v, want config override", s)
	}
	if _, ok := LookupScenario(cfg, "PILOT"); !ok {
		t.Fatal("config-only scenario not found")
	}
}

func TestLoadSave_RoundTripsUserScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.General.DefaultScenario = "Pilot"
	cfg.Projection.Clamp = false
	cfg.Scenarios = []ScenarioConfig{{Name: "Pilot", Params: revenue.Params{CallDurationMinutes: 2, TargetVolume: 10}}}
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.General.DefaultScenario != "Pilot" || got.Projection.Clamp {
		t.Fatalf("loaded general/projection = %+v/%+v", got.General, got.Projection)
	}
	if len(got.Scenarios) != 1 || got.Scenarios[0].Params.TargetVolume != 10 {
		t.Fatalf("loaded scenarios = %+v", got.Scenarios)
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.Projection.Clamp || cfg.Server.Addr != "127.0.0.1:8787" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("REVCALC_SCENARIO", "Premium")
	t.Setenv("REVCALC_ADDR", "0.0.0.0:9999")
	t.Setenv("REVCALC_LOG_LEVEL", "DEBUG")

	if got := DefaultScenarioName(cfg); got != "Premium" {
		t.Errorf("DefaultScenarioName = %q, want Premium", got)
	}
	if got := ServerAddr(cfg); got != "0.0.0.0:9999" {
		t.Errorf("ServerAddr = %q", got)
	}
	if got := LogLevel(cfg); got != "debug" {
		t.Errorf("LogLevel = %q, want debug", got)
	}
}
