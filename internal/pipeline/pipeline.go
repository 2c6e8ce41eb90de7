// Package pipeline runs scenarios through the revenue engine and bundles
// the results into reports for the CLI, TUI, service and exporters.
package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

// Options controls report generation.
type Options struct {
	// Clamp floors negative monthly revenue at 0.
	Clamp bool
	// StartMonth labels the first projected month. Zero uses Now's month.
	StartMonth time.Month
	// IncludeDaily computes the daily breakdown for all 12 months.
	IncludeDaily bool
	// Now is the report timestamp. Zero means time.Now().
	Now time.Time
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Projection returns the engine options implied by o.
func (o Options) Projection() revenue.ProjectionOptions {
	start := o.StartMonth
	if start == 0 {
		start = o.now().Month()
	}
	return revenue.ProjectionOptions{StartMonth: start, Clamp: o.Clamp}
}

// Report is everything derived from one scenario.
type Report struct {
	Scenario    model.Scenario              `json:"scenario"`
	Results     revenue.Results             `json:"results"`
	Months      []revenue.MonthlyProjection `json:"months"`
	Daily       [][]revenue.DailyEntry      `json:"daily,omitempty"`
	Summary     revenue.Summary             `json:"summary"`
	Clamped     bool                        `json:"clamped"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// Run computes the report for s.
func Run(s model.Scenario, opts Options) (*Report, error) {
	r, err := revenue.Compute(s.Params)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	months, err := revenue.Project(s.Params, r, opts.Projection())
	if err != nil {
		return nil, fmt.Errorf("scenario %q: projecting months: %w", s.Name, err)
	}

	rep := &Report{
		Scenario:    s,
		Results:     r,
		Months:      months,
		Summary:     revenue.Summarize(s.Params, months),
		Clamped:     opts.Clamp,
		GeneratedAt: opts.now(),
	}

	if opts.IncludeDaily {
		rep.Daily = make([][]revenue.DailyEntry, len(months))
		for i := range months {
			days, err := revenue.DailyBreakdown(months, i, s.Params)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: daily breakdown month %d: %w", s.Name, i, err)
			}
			rep.Daily[i] = days
		}
	}
	return rep, nil
}

// DailyFor returns the daily breakdown for month i, using the precomputed
// breakdown when the report has one.
func (r *Report) DailyFor(i int) ([]revenue.DailyEntry, error) {
	if i >= 0 && i < len(r.Daily) {
		return r.Daily[i], nil
	}
	return revenue.DailyBreakdown(r.Months, i, r.Scenario.Params)
}
