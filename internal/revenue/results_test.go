package revenue

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// fixture300K is the "300K Calls" preset.
func fixture300K() Params {
	return Params{
		CallDurationMinutes:      3,
		TargetVolume:             300_000,
		PricePerMinute:           450,
		HoursPerDay:              12,
		Channels:                 48,
		OneTimePurchaseCost:      177_000_000,
		OperationalCostPerPeriod: 91_942_620,
		TaxRatePercent:           11,
	}
}

// small has round numbers that keep every intermediate exact.
func small() Params {
	return Params{
		CallDurationMinutes:      1,
		TargetVolume:             1200,
		PricePerMinute:           100,
		HoursPerDay:              1,
		Channels:                 1,
		OneTimePurchaseCost:      20_000,
		OperationalCostPerPeriod: 6000,
		TaxRatePercent:           10,
	}
}

func TestCompute_300KFixture(t *testing.T) {
	r, err := Compute(fixture300K())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if r.TotalMinutes != 900_000 {
		t.Fatalf("TotalMinutes = %.0f, want 900000", r.TotalMinutes)
	}
	if r.DailyCapacityMinutes != 34_560 {
		t.Fatalf("DailyCapacityMinutes = %.0f, want 34560", r.DailyCapacityMinutes)
	}
	if math.Abs(r.CompletionDays-26.0416666) > 1e-6 {
		t.Fatalf("CompletionDays = %.6f, want ~26.04", r.CompletionDays)
	}
	if r.CompletionMonths != 1 {
		t.Fatalf("CompletionMonths = %d, want 1", r.CompletionMonths)
	}
	if r.GrossRevenue != 405_000_000 {
		t.Fatalf("GrossRevenue = %.0f, want 405000000", r.GrossRevenue)
	}
	if r.AdjustedOperationalCost != 7_661_885 {
		t.Fatalf("AdjustedOperationalCost = %.2f, want 7661885", r.AdjustedOperationalCost)
	}
	if r.NetRevenue != 220_338_115 {
		t.Fatalf("NetRevenue = %.2f, want 220338115", r.NetRevenue)
	}
	if !nearlyEqual(r.TaxAmount, 24_237_192.65) {
		t.Fatalf("TaxAmount = %.2f, want 24237192.65", r.TaxAmount)
	}
	if !nearlyEqual(r.AfterTaxRevenue, 196_100_922.35) {
		t.Fatalf("AfterTaxRevenue = %.2f, want 196100922.35", r.AfterTaxRevenue)
	}
	if math.Abs(r.ROI-106.194584957) > 1e-6 {
		t.Fatalf("ROI = %.6f, want ~106.19", r.ROI)
	}
}

func TestCompute_CompletionDaysExact(t *testing.T) {
	for _, p := range []Params{fixture300K(), small()} {
		r, err := Compute(p)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if r.CompletionDays != r.TotalMinutes/r.DailyCapacityMinutes {
			t.Errorf("CompletionDays = %v, want exactly %v", r.CompletionDays, r.TotalMinutes/r.DailyCapacityMinutes)
		}
		if r.CompletionDays > 0 && r.CompletionMonths < 1 {
			t.Errorf("CompletionMonths = %d for %v days", r.CompletionMonths, r.CompletionDays)
		}
	}
}

func TestCompute_GrossMonotonic(t *testing.T) {
	bump := []struct {
		name string
		set  func(*Params, float64)
	}{
		{"target", func(p *Params, v float64) { p.TargetVolume = v }},
		{"duration", func(p *Params, v float64) { p.CallDurationMinutes = v }},
		{"price", func(p *Params, v float64) { p.PricePerMinute = v }},
	}

	for _, b := range bump {
		prev := math.Inf(-1)
		for v := 1.0; v <= 1e6; v *= 7 {
			p := fixture300K()
			b.set(&p, v)
			r, err := Compute(p)
			if err != nil {
				t.Fatalf("%s=%v: %v", b.name, v, err)
			}
			if r.GrossRevenue < prev {
				t.Fatalf("%s=%v: gross %v decreased from %v", b.name, v, r.GrossRevenue, prev)
			}
			prev = r.GrossRevenue
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	p := fixture300K()
	a, errA := Compute(p)
	b, errB := Compute(p)
	if errA != nil || errB != nil {
		t.Fatalf("Compute errors: %v, %v", errA, errB)
	}
	if a != b {
		t.Fatalf("Compute not idempotent:\n%+v\n%+v", a, b)
	}

	opts := ProjectionOptions{StartMonth: time.May, Clamp: false}
	ma, _ := Project(p, a, opts)
	mb, _ := Project(p, b, opts)
	if !reflect.DeepEqual(ma, mb) {
		t.Fatal("Project not idempotent")
	}
}

func TestCompute_ZeroChannels(t *testing.T) {
	p := fixture300K()
	p.Channels = 0
	_, err := Compute(p)
	if !IsDivisionByZero(err) {
		t.Fatalf("channels=0: err = %v, want DivisionByZero", err)
	}

	p = fixture300K()
	p.HoursPerDay = 0
	if _, err := Compute(p); !IsDivisionByZero(err) {
		t.Fatalf("hours=0: err = %v, want DivisionByZero", err)
	}
}

func TestCompute_ZeroInvestment(t *testing.T) {
	p := small()
	p.OneTimePurchaseCost = 0
	p.OperationalCostPerPeriod = 0
	if _, err := Compute(p); !IsDivisionByZero(err) {
		t.Fatalf("err = %v, want DivisionByZero for zero investment", err)
	}
}

func TestCompute_InvalidParameters(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Params)
	}{
		{"negative price", func(p *Params) { p.PricePerMinute = -1 }},
		{"negative target", func(p *Params) { p.TargetVolume = -5 }},
		{"negative channels", func(p *Params) { p.Channels = -2 }},
		{"zero duration", func(p *Params) { p.CallDurationMinutes = 0 }},
		{"tax above 100", func(p *Params) { p.TaxRatePercent = 101 }},
		{"NaN one-time", func(p *Params) { p.OneTimePurchaseCost = math.NaN() }},
		{"Inf op cost", func(p *Params) { p.OperationalCostPerPeriod = math.Inf(1) }},
		{"capacity overflow", func(p *Params) { p.Channels = 1e307 }},
		{"investment overflow", func(p *Params) { p.OneTimePurchaseCost = math.MaxFloat64; p.OperationalCostPerPeriod = math.MaxFloat64 }},
	}
	for _, tc := range cases {
		p := small()
		tc.mod(&p)
		_, err := Compute(p)
		if !IsInvalidParameter(err) {
			t.Errorf("%s: err = %v, want InvalidParameter", tc.name, err)
		}
	}
}

func TestCompute_NegativeNetStillComputable(t *testing.T) {
	p := fixture300K()
	p.PricePerMinute = 1

	r, err := Compute(p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if r.NetRevenue >= 0 {
		t.Fatalf("NetRevenue = %.2f, want negative", r.NetRevenue)
	}
	if r.TaxAmount >= 0 {
		t.Fatalf("TaxAmount = %.2f, want negative for a loss", r.TaxAmount)
	}
	if r.ROI >= 0 || math.IsNaN(r.ROI) || math.IsInf(r.ROI, 0) {
		t.Fatalf("ROI = %v, want finite negative", r.ROI)
	}
}

func TestCompute_ZeroTarget(t *testing.T) {
	p := small()
	p.TargetVolume = 0

	r, err := Compute(p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if r.CompletionMonths != 0 || r.AdjustedOperationalCost != 0 {
		t.Fatalf("zero target: months=%d adjusted=%v, want 0/0", r.CompletionMonths, r.AdjustedOperationalCost)
	}
	if !nearlyEqual(r.ROI, -90) {
		t.Fatalf("ROI = %v, want -90 (one-time cost lost, net of tax credit)", r.ROI)
	}

	if _, err := Project(p, r, ProjectionOptions{}); !IsDivisionByZero(err) {
		t.Fatalf("Project with zero completion months: err = %v, want DivisionByZero", err)
	}
}
