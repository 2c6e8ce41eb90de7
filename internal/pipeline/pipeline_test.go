package pipeline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/revcalc/internal/config"
	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"
	"github.com/theirongolddev/revcalc/internal/store"
)

var fixedNow = time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)

func scenario300K() model.Scenario {
	return model.Scenario{
		Name:   "300K Calls",
		Source: model.SourcePreset,
		Params: revenue.Params{
			CallDurationMinutes:      3,
			TargetVolume:             300_000,
			PricePerMinute:           450,
			HoursPerDay:              12,
			Channels:                 48,
			OneTimePurchaseCost:      177_000_000,
			OperationalCostPerPeriod: 91_942_620,
			TaxRatePercent:           11,
		},
	}
}

func TestRun_300K(t *testing.T) {
	rep, err := Run(scenario300K(), Options{Clamp: true, Now: fixedNow})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Results.GrossRevenue != 405_000_000 {
		t.Errorf("gross = %v, want 405000000", rep.Results.GrossRevenue)
	}
	if len(rep.Months) != 12 {
		t.Fatalf("months = %d, want 12", len(rep.Months))
	}
	if rep.Months[0].Label != "Mar" {
		t.Errorf("first month = %s, want Mar", rep.Months[0].Label)
	}
	if rep.Daily != nil {
		t.Error("Daily computed without IncludeDaily")
	}
	if !rep.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v", rep.GeneratedAt)
	}
}

func TestRun_IncludeDaily(t *testing.T) {
	rep, err := Run(scenario300K(), Options{Now: fixedNow, IncludeDaily: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Daily) != 12 || len(rep.Daily[0]) != 30 {
		t.Fatalf("daily shape = %d months", len(rep.Daily))
	}
	if rep.Daily[0][0].ThresholdType != revenue.TotalInvestment {
		t.Errorf("month 0 threshold = %s", rep.Daily[0][0].ThresholdType)
	}

	got, err := rep.DailyFor(3)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := revenue.DailyBreakdown(rep.Months, 3, rep.Scenario.Params)
	if got[29].CumulativeRevenue != want[29].CumulativeRevenue {
		t.Errorf("DailyFor(3) differs from DailyBreakdown")
	}
	if _, err := rep.DailyFor(12); !revenue.IsInvalidParameter(err) {
		t.Errorf("DailyFor(12) err = %v, want invalid parameter", err)
	}
}

func TestRun_PropagatesEngineErrors(t *testing.T) {
	s := scenario300K()
	s.Params.Channels = 0
	if _, err := Run(s, Options{}); !revenue.IsDivisionByZero(err) {
		t.Fatalf("err = %v, want division by zero", err)
	}
}

func TestRunAll_PreservesOrder(t *testing.T) {
	var scenarios []model.Scenario
	for i := 1; i <= 20; i++ {
		s := scenario300K()
		s.Params.TargetVolume = float64(i) * 10_000
		scenarios = append(scenarios, s)
	}
	broken := scenario300K()
	broken.Params.HoursPerDay = 0
	scenarios = append(scenarios, broken)

	var calls atomic.Int64
	results := RunAll(scenarios, Options{Now: fixedNow}, func(current, total int) {
		calls.Add(1)
		if total != len(scenarios) {
			t.Errorf("total = %d", total)
		}
	})

	if int(calls.Load()) != len(scenarios) {
		t.Errorf("progress calls = %d, want %d", calls.Load(), len(scenarios))
	}
	for i := 0; i < 20; i++ {
		want := float64(i+1) * 10_000 * 3 * 450
		if results[i].Err != nil || results[i].Report.Results.GrossRevenue != want {
			t.Fatalf("result %d = %+v, want gross %v", i, results[i], want)
		}
	}
	if last := results[len(results)-1]; last.Err == nil {
		t.Error("broken scenario did not fail")
	}
}

func TestCompare(t *testing.T) {
	current := scenario300K()
	current.Name = "Mine"
	current.Source = model.SourceCustom

	other := scenario300K()
	same := current
	same.Name = "MINE"
	bad := scenario300K()
	bad.Name = "Bad"
	bad.Params.Channels = 0

	rows := Compare(current, []model.Scenario{other, same, bad})
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if !rows[0].Current || rows[0].Name != "Mine" {
		t.Errorf("first row = %+v", rows[0])
	}
	if math.Abs(rows[1].ROI-106.194584957) > 1e-6 {
		t.Errorf("ROI = %v", rows[1].ROI)
	}
	if rows[2].Err == "" {
		t.Error("failing scenario has no error text")
	}
}

func TestInvestor(t *testing.T) {
	tele := scenario300K()

	rep, err := Investor(tele, InvestorInputs{
		GrowthPercent:      50,
		Years:              3,
		Tiers:              revenue.DefaultTiers(),
		LokalAIOneTime:     100_000_000,
		LokalAIOperational: 60_000_000,
		LiveAudio:          revenue.DefaultLiveAudio(),
		LiveAudioOneTime:   60_000_000,
	})
	if err != nil {
		t.Fatalf("Investor: %v", err)
	}
	if len(rep.Portfolio.Lines) != 3 || len(rep.Portfolio.Combined) != 3 {
		t.Fatalf("portfolio shape = %d lines, %d years", len(rep.Portfolio.Lines), len(rep.Portfolio.Combined))
	}

	sum := 0.0
	for _, l := range rep.Portfolio.Lines {
		sum += l.Years[0].Revenue
	}
	if math.Abs(sum-rep.Portfolio.Combined[0].Revenue) > 1e-3 {
		t.Errorf("combined year 1 = %v, want %v", rep.Portfolio.Combined[0].Revenue, sum)
	}
	if rep.Portfolio.Lines[0].Years[0].Revenue != 4_860_000_000 {
		t.Errorf("telemarketing year 1 = %v", rep.Portfolio.Lines[0].Years[0].Revenue)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	good := `name = "Pilot"
[params]
call_duration_minutes = 2
target_volume = 100
price_per_minute = 450
hours_per_day = 8
channels = 2
one_time_purchase_cost = 1
operational_cost_per_period = 1
tax_rate_percent = 11
`
	if err := os.WriteFile(filepath.Join(dir, "pilot.toml"), []byte(good), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := LoadDir(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalFiles != 2 || res.FileErrors != 1 || len(res.Scenarios) != 1 {
		t.Fatalf("LoadDir = %+v", res)
	}
	if res.Scenarios[0].Name != "Pilot" {
		t.Errorf("name = %q", res.Scenarios[0].Name)
	}
}

func TestDataPath_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got := DataPath(); got != filepath.Join("/tmp/xdg", "revcalc", "revcalc.db") {
		t.Errorf("DataPath = %q", got)
	}
}

func TestCatalog_WithoutStore(t *testing.T) {
	cat := Catalog{Config: config.DefaultConfig()}

	s, err := cat.Lookup("premium")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s.Name != "Premium" || s.Source != model.SourcePreset {
		t.Errorf("Lookup(premium) = %+v", s)
	}

	if _, err := cat.Lookup("nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("err = %v, want ErrUnknownScenario", err)
	}

	list, err := cat.List()
	if err != nil || len(list) != len(config.Presets()) {
		t.Fatalf("List = %d, %v", len(list), err)
	}
}

func TestCatalog_SavedScenarioWins(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "revcalc.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	mine := scenario300K()
	mine.Name = "premium"
	mine.Params.Channels = 96
	if _, err := st.SaveScenario(mine); err != nil {
		t.Fatal(err)
	}

	cat := Catalog{Config: config.DefaultConfig(), Store: st}
	s, err := cat.Lookup("Premium")
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != model.SourceSaved || s.Params.Channels != 96 {
		t.Errorf("Lookup = %+v, want saved", s)
	}

	list, err := cat.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != len(config.Presets()) {
		t.Errorf("List = %d entries, want %d", len(list), len(config.Presets()))
	}
	if last := list[len(list)-1]; last.Source != model.SourceSaved {
		t.Errorf("saved scenario not listed last: %+v", last)
	}
}
