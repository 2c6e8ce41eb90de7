package revenue

import (
	"testing"
	"time"
)

func mustProject(t *testing.T, p Params, opts ProjectionOptions) []MonthlyProjection {
	t.Helper()
	r, err := Compute(p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	months, err := Project(p, r, opts)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	return months
}

func TestProject_FirstMonthCarriesOneTimeCost(t *testing.T) {
	months := mustProject(t, small(), ProjectionOptions{StartMonth: time.January, Clamp: false})

	if len(months) != 12 {
		t.Fatalf("len = %d, want 12", len(months))
	}
	// grossShare 10000, opShare 6000, one-time 20000
	if months[0].Current != -16_000 {
		t.Fatalf("month 0 current = %.2f, want -16000", months[0].Current)
	}
	for i := 1; i < 12; i++ {
		if months[i].Current != 4000 {
			t.Fatalf("month %d current = %.2f, want 4000", i, months[i].Current)
		}
	}

	m := months[1]
	if !nearlyEqual(m.TaxedCurrent, 3600) {
		t.Fatalf("TaxedCurrent = %.4f, want 3600", m.TaxedCurrent)
	}
	if !nearlyEqual(m.Projected, 4140) {
		t.Fatalf("Projected = %.4f, want 4140", m.Projected)
	}
	if !nearlyEqual(m.Conservative, 3060) {
		t.Fatalf("Conservative = %.4f, want 3060", m.Conservative)
	}
}

func TestProject_Clamp(t *testing.T) {
	months := mustProject(t, small(), ProjectionOptions{StartMonth: time.January, Clamp: true})
	if months[0].Current != 0 || !months[0].Clamped {
		t.Fatalf("month 0 = %.2f clamped=%v, want 0 clamped", months[0].Current, months[0].Clamped)
	}
	if months[0].Projected != 0 || months[0].Conservative != 0 {
		t.Fatalf("clamped month projected/conservative = %v/%v, want 0/0", months[0].Projected, months[0].Conservative)
	}
	if months[1].Clamped {
		t.Fatal("month 1 should not be clamped")
	}
}

func TestProject_Reconciles(t *testing.T) {
	p := small()
	r, _ := Compute(p)
	months, err := Project(p, r, ProjectionOptions{Clamp: false})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	total := 0.0
	for _, m := range months {
		total += m.Current + m.Deducted
	}
	if !nearlyEqual(total, r.GrossRevenue) {
		t.Fatalf("sum(current + deducted) = %.2f, want gross %.2f", total, r.GrossRevenue)
	}
}

func TestProject_LabelsWrapAcrossYear(t *testing.T) {
	months := mustProject(t, small(), ProjectionOptions{StartMonth: time.November})
	want := map[int]string{0: "Nov", 1: "Dec", 2: "Jan", 11: "Oct"}
	for i, label := range want {
		if months[i].Label != label {
			t.Errorf("months[%d].Label = %q, want %q", i, months[i].Label, label)
		}
	}
}

func TestProject_ZeroStartMonthIsJanuary(t *testing.T) {
	months := mustProject(t, small(), ProjectionOptions{})
	if months[0].Month != time.January {
		t.Fatalf("first month = %v, want January", months[0].Month)
	}
}

func TestProject_InvalidStartMonth(t *testing.T) {
	p := small()
	r, _ := Compute(p)
	if _, err := Project(p, r, ProjectionOptions{StartMonth: 13}); !IsInvalidParameter(err) {
		t.Fatalf("err = %v, want InvalidParameter", err)
	}
}

func TestProject_OverflowingDeductionIsRejected(t *testing.T) {
	p := small()
	p.OneTimePurchaseCost = 1e308
	p.OperationalCostPerPeriod = 1e308
	p.TaxRatePercent = 0

	r, err := Compute(p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	months, err := Project(p, r, ProjectionOptions{StartMonth: time.January})
	if !IsInvalidParameter(err) {
		t.Fatalf("err = %v, months = %v, want InvalidParameter", err, months)
	}
}

func TestDailyBreakdown_Thresholds(t *testing.T) {
	p := small()
	months := mustProject(t, p, ProjectionOptions{Clamp: true})

	d0, err := DailyBreakdown(months, 0, p)
	if err != nil {
		t.Fatalf("DailyBreakdown(0): %v", err)
	}
	if len(d0) != 30 {
		t.Fatalf("len = %d, want 30", len(d0))
	}
	if d0[0].ThresholdType != TotalInvestment {
		t.Fatalf("month 0 threshold type = %s, want TotalInvestment", d0[0].ThresholdType)
	}
	if d0[0].Threshold != 26_000 {
		t.Fatalf("month 0 threshold = %.0f, want 26000", d0[0].Threshold)
	}

	d1, err := DailyBreakdown(months, 1, p)
	if err != nil {
		t.Fatalf("DailyBreakdown(1): %v", err)
	}
	if d1[0].ThresholdType != OperationalCost {
		t.Fatalf("month 1 threshold type = %s, want OperationalCost", d1[0].ThresholdType)
	}
	if d1[0].Threshold != 6000 {
		t.Fatalf("month 1 threshold = %.0f, want 6000", d1[0].Threshold)
	}
}

func TestDailyBreakdown_CumulativeCarriesOver(t *testing.T) {
	p := small()
	months := mustProject(t, p, ProjectionOptions{Clamp: true})

	// month 0 is clamped to 0, month 1 adds 4000, so month 2 starts at 4000.
	d2, err := DailyBreakdown(months, 2, p)
	if err != nil {
		t.Fatalf("DailyBreakdown: %v", err)
	}
	if !nearlyEqual(d2[0].CumulativeRevenue, 4000+4000.0/30) {
		t.Fatalf("day 1 cumulative = %.4f, want %.4f", d2[0].CumulativeRevenue, 4000+4000.0/30)
	}
	if !nearlyEqual(d2[29].CumulativeRevenue, 8000) {
		t.Fatalf("day 30 cumulative = %.4f, want 8000", d2[29].CumulativeRevenue)
	}
	if d2[13].Status != Loss {
		t.Fatalf("day 14 status = %s, want Loss", d2[13].Status)
	}
	if d2[15].Status != Profit {
		t.Fatalf("day 16 status = %s, want Profit", d2[15].Status)
	}
}

func TestDailyBreakdown_ExactBreakEven(t *testing.T) {
	months := []MonthlyProjection{
		{Index: 0, Label: "Jan", Current: 300},
		{Index: 1, Label: "Feb", Current: 300},
	}
	p := Params{OperationalCostPerPeriod: 400}

	days, err := DailyBreakdown(months, 1, p)
	if err != nil {
		t.Fatalf("DailyBreakdown: %v", err)
	}
	if days[8].Status != Loss {
		t.Errorf("day 9 = %s, want Loss", days[8].Status)
	}
	if days[9].Status != BreakEven {
		t.Errorf("day 10 = %s (cumulative %.4f), want BreakEven", days[9].Status, days[9].CumulativeRevenue)
	}
	if days[10].Status != Profit {
		t.Errorf("day 11 = %s, want Profit", days[10].Status)
	}
}

func TestDailyBreakdown_OutOfRange(t *testing.T) {
	months := mustProject(t, small(), ProjectionOptions{})
	for _, idx := range []int{-1, 12} {
		if _, err := DailyBreakdown(months, idx, small()); !IsInvalidParameter(err) {
			t.Errorf("index %d: err = %v, want InvalidParameter", idx, err)
		}
	}
}

func TestSummarize_BreakEvenMonth(t *testing.T) {
	p := small()
	months := mustProject(t, p, ProjectionOptions{StartMonth: time.March, Clamp: true})

	s := Summarize(p, months)
	// threshold 26000, cumulative reaches 28000 after month index 7
	if s.BreakEvenMonth != 7 {
		t.Fatalf("BreakEvenMonth = %d, want 7", s.BreakEvenMonth)
	}
	if s.BreakEvenLabel != "Oct" {
		t.Fatalf("BreakEvenLabel = %q, want Oct", s.BreakEvenLabel)
	}
	if !nearlyEqual(s.TotalCurrent, 44_000) {
		t.Fatalf("TotalCurrent = %.2f, want 44000", s.TotalCurrent)
	}
	if !nearlyEqual(s.AverageMonthly, 44_000.0/12) {
		t.Fatalf("AverageMonthly = %.2f", s.AverageMonthly)
	}
}

func TestSummarize_NeverBreaksEven(t *testing.T) {
	p := fixture300K()
	months := mustProject(t, p, ProjectionOptions{Clamp: true})
	s := Summarize(p, months)
	if s.BreakEvenMonth != -1 {
		t.Fatalf("BreakEvenMonth = %d, want -1", s.BreakEvenMonth)
	}
}
