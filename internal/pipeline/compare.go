package pipeline

import (
	"strings"

	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

// ComparisonRow is one scenario in a side-by-side comparison.
type ComparisonRow struct {
	Name             string       `json:"name"`
	Source           model.Source `json:"source"`
	Current          bool         `json:"current"`
	GrossRevenue     float64      `json:"gross_revenue"`
	NetRevenue       float64      `json:"net_revenue"`
	AfterTaxRevenue  float64      `json:"after_tax_revenue"`
	ROI              float64      `json:"roi"`
	CompletionDays   float64      `json:"completion_days"`
	CompletionMonths int          `json:"completion_months"`
	Err              string       `json:"error,omitempty"`
}

// Compare computes current and every other scenario. A scenario in others
// with the same name as current is skipped. Failing scenarios keep their
// row with Err set.
func Compare(current model.Scenario, others []model.Scenario) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(others)+1)
	rows = append(rows, compareRow(current, true))
	for _, s := range others {
		if strings.EqualFold(s.Name, current.Name) {
			continue
		}
		rows = append(rows, compareRow(s, false))
	}
	return rows
}

func compareRow(s model.Scenario, current bool) ComparisonRow {
	row := ComparisonRow{Name: s.Name, Source: s.Source, Current: current}
	r, err := revenue.Compute(s.Params)
	if err != nil {
		row.Err = err.Error()
		return row
	}
	row.GrossRevenue = r.GrossRevenue
	row.NetRevenue = r.NetRevenue
	row.AfterTaxRevenue = r.AfterTaxRevenue
	row.ROI = r.ROI
	row.CompletionDays = r.CompletionDays
	row.CompletionMonths = r.CompletionMonths
	return row
}
