package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revcalc/internal/logging"
	"github.com/theirongolddev/revcalc/internal/model"
	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

var fixedNow = time.Date(2026, time.January, 10, 8, 30, 0, 0, time.UTC)

func testData(t *testing.T) Data {
	t.Helper()
	s := model.Scenario{
		Name: "300K Calls",
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
	rep, err := pipeline.Run(s, pipeline.Options{Clamp: true, Now: fixedNow})
	require.NoError(t, err)

	lk, err := revenue.ProjectLokalAI(revenue.DefaultTiers(), 3)
	require.NoError(t, err)
	laParams := revenue.DefaultLiveAudio()
	la, err := revenue.ComputeLiveAudio(laParams)
	require.NoError(t, err)
	inv, err := pipeline.Investor(s, pipeline.InvestorInputs{
		GrowthPercent: 50, Years: 3, Tiers: revenue.DefaultTiers(),
		LokalAIOneTime: 100_000_000, LokalAIOperational: 60_000_000,
		LiveAudio: laParams, LiveAudioOneTime: 60_000_000,
	})
	require.NoError(t, err)

	return Data{
		Report:     rep,
		DailyMonth: 1,
		Comparison: pipeline.Compare(s, nil),
		LokalAI:    &lk,
		LiveAudio:  &LiveAudio{Params: laParams, Results: la},
		Investor:   inv,
		Now:        fixedNow,
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out/Report.PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = FormatFromPath("report.docx")
	assert.Error(t, err)
}

func TestExport_EveryViewEveryFormat(t *testing.T) {
	e := New(testData(t), logging.Nop())
	dir := t.TempDir()

	for _, view := range Views {
		for _, ext := range []string{"md", "html", "csv", "json", "pdf"} {
			name := filepath.Join(dir, view+"."+ext)
			require.NoError(t, e.Export(view, name), "%s.%s", view, ext)

			info, err := os.Stat(name)
			require.NoError(t, err)
			assert.Positive(t, info.Size(), "%s.%s is empty", view, ext)
		}
	}
}

func TestExport_UnknownViewWritesNothing(t *testing.T) {
	e := New(testData(t), logging.Nop())
	name := filepath.Join(t.TempDir(), "x.md")

	err := e.Export("hourly", name)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view")
	_, statErr := os.Stat(name)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExport_MissingData(t *testing.T) {
	e := New(Data{}, logging.Nop())
	var buf bytes.Buffer
	for _, view := range Views {
		assert.Error(t, e.Write(&buf, view, FormatMarkdown), view)
		assert.Error(t, e.Write(&buf, view, FormatJSON), view)
	}
}

func TestMarkdown_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(testData(t), logging.Nop()).Write(&buf, ViewSummary, FormatMarkdown))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Revenue Summary\n"))
	assert.Contains(t, out, "| Gross revenue | Rp 405.000.000 |")
	assert.Contains(t, out, "| ROI | 106.19% |")
	assert.Contains(t, out, "Generated 2026-01-10 08:30")
}

func TestHTML_RendersTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(testData(t), logging.Nop()).Write(&buf, ViewMonthly, FormatHTML))

	out := buf.String()
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<h1>Monthly Projection</h1>")
	assert.Contains(t, out, "<td>Jan</td>")
}

func TestCSV_Daily(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(testData(t), logging.Nop()).Write(&buf, ViewDaily, FormatCSV))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	var days int
	for _, rec := range records {
		if len(rec) == 5 && rec[0] != "Day" {
			days++
		}
	}
	assert.Equal(t, 30, days)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSV_BlocksAndWriteError(t *testing.T) {
	doc := Document{
		Title:    "Summary",
		Subtitle: "Baseline",
		Facts:    []Fact{{Label: "ROI", Value: "12.00%"}},
		Tables: []Table{{
			Title:   "Months",
			Headers: []string{"Month", "Current"},
			Rows:    [][]string{{"Jan", "Rp 1.000"}, {"Feb", "Rp 2.000"}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, doc))
	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Summary", "Baseline"},
		{"ROI", "12.00%"},
		{"Months"},
		{"Month", "Current"},
		{"Jan", "Rp 1.000"},
		{"Feb", "Rp 2.000"},
	}, records)

	assert.EqualError(t, writeCSV(failingWriter{}, doc), "disk full")
}

func TestJSON_Monthly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(testData(t), logging.Nop()).Write(&buf, ViewMonthly, FormatJSON))

	var got struct {
		Scenario string `json:"scenario"`
		Clamped  bool   `json:"clamped"`
		Months   []struct {
			Month   string  `json:"month"`
			Current float64 `json:"current"`
		} `json:"months"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "300K Calls", got.Scenario)
	assert.True(t, got.Clamped)
	require.Len(t, got.Months, 12)
	assert.Equal(t, "Jan", got.Months[0].Month)
}

func TestPDF_PaginatesLongTables(t *testing.T) {
	doc := Document{Title: "Long", Generated: fixedNow}
	tbl := Table{Title: "Rows", Headers: []string{"N", "Value"}}
	for i := 0; i < 150; i++ {
		tbl.Rows = append(tbl.Rows, []string{"row", "Rp 1.000"})
	}
	doc.Tables = []Table{tbl}

	pdf, err := renderPDF(doc)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pdf.PageCount(), 4)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDF_ShortDocumentIsOnePage(t *testing.T) {
	doc, err := testData(t).document(ViewSummary)
	require.NoError(t, err)

	pdf, err := renderPDF(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}

func TestPDF_ColumnWidthsMeasureTranslatedText(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	raw := Table{
		Headers: []string{"Skenario", "Catatan"},
		Rows:    [][]string{{"Café Größe", "ok"}},
	}
	translated := Table{
		Headers: []string{tr("Skenario"), tr("Catatan")},
		Rows:    [][]string{{tr("Café Größe"), tr("ok")}},
	}

	got := columnWidths(pdf, raw, 180, tr)
	want := columnWidths(pdf, translated, 180, func(s string) string { return s })
	assert.InDeltaSlice(t, want, got, 1e-9)

	utf8Widths := columnWidths(pdf, raw, 180, func(s string) string { return s })
	assert.Greater(t, utf8Widths[0], got[0], "raw UTF-8 bytes overstate the drawn width")
}
