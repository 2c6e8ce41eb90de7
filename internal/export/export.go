// Package export renders calculator views into files.
//
// A view is rendered to a Document and then encoded by file extension:
// Markdown, HTML, CSV or an A4 PDF. JSON exports the view's underlying
// data rather than the formatted document.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/revcalc/internal/pipeline"
	"github.com/theirongolddev/revcalc/internal/revenue"
)

// View IDs.
const (
	ViewSummary    = "summary"
	ViewMonthly    = "monthly"
	ViewDaily      = "daily"
	ViewComparison = "comparison"
	ViewLokalAI    = "lokalai"
	ViewLiveAudio  = "liveaudio"
	ViewInvestor   = "investor"
)

// Views lists every exportable view.
var Views = []string{ViewSummary, ViewMonthly, ViewDaily, ViewComparison, ViewLokalAI, ViewLiveAudio, ViewInvestor}

// Format is an output encoding.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

// FormatFromPath picks the format from filename's extension.
func FormatFromPath(filename string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")); ext {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export type %q (use .md, .html, .csv, .json or .pdf)", filepath.Ext(filename))
	}
}

// LiveAudio pairs live-audio inputs with their results.
type LiveAudio struct {
	Params  revenue.LiveAudioParams  `json:"params"`
	Results revenue.LiveAudioResults `json:"results"`
}

// Data is everything the views draw from. Views fail when the data they
// need is missing.
type Data struct {
	Report     *pipeline.Report
	DailyMonth int
	Comparison []pipeline.ComparisonRow
	LokalAI    *revenue.LokalAIProjection
	LiveAudio  *LiveAudio
	Investor   *pipeline.InvestorReport
	Now        time.Time
}

func (d Data) now() time.Time {
	if !d.Now.IsZero() {
		return d.Now
	}
	if d.Report != nil {
		return d.Report.GeneratedAt
	}
	return time.Now()
}

func (d Data) payload(view string) (any, error) {
	switch view {
	case ViewSummary:
		rep, err := d.needReport(view)
		if err != nil {
			return nil, err
		}
		return struct {
			Scenario any             `json:"scenario"`
			Results  revenue.Results `json:"results"`
			Summary  revenue.Summary `json:"summary"`
		}{rep.Scenario, rep.Results, rep.Summary}, nil
	case ViewMonthly:
		rep, err := d.needReport(view)
		if err != nil {
			return nil, err
		}
		return struct {
			Scenario string                      `json:"scenario"`
			Clamped  bool                        `json:"clamped"`
			Months   []revenue.MonthlyProjection `json:"months"`
			Summary  revenue.Summary             `json:"summary"`
		}{rep.Scenario.Name, rep.Clamped, rep.Months, rep.Summary}, nil
	case ViewDaily:
		rep, err := d.needReport(view)
		if err != nil {
			return nil, err
		}
		days, err := rep.DailyFor(d.DailyMonth)
		if err != nil {
			return nil, err
		}
		return struct {
			Scenario string               `json:"scenario"`
			Month    int                  `json:"month"`
			Days     []revenue.DailyEntry `json:"days"`
		}{rep.Scenario.Name, d.DailyMonth, days}, nil
	}

	// The remaining views validate their data while building the document.
	if _, err := d.document(view); err != nil {
		return nil, err
	}
	switch view {
	case ViewComparison:
		return d.Comparison, nil
	case ViewLokalAI:
		return d.LokalAI, nil
	case ViewLiveAudio:
		return d.LiveAudio, nil
	default:
		return d.Investor, nil
	}
}

// Exporter writes views of one data set.
type Exporter struct {
	data Data
	log  zerolog.Logger
}

// New returns an Exporter over data.
func New(data Data, log zerolog.Logger) *Exporter {
	return &Exporter{data: data, log: log}
}

// Export renders viewID into filename, choosing the format by extension.
// Nothing is written when rendering fails.
func (e *Exporter) Export(viewID, filename string) error {
	format, err := FormatFromPath(filename)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := e.Write(&buf, viewID, format); err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	e.log.Info().Str("view", viewID).Str("format", string(format)).Str("file", filename).Int("bytes", buf.Len()).Msg("exported")
	return nil
}

// Write renders viewID to w in format.
func (e *Exporter) Write(w io.Writer, viewID string, format Format) error {
	if format == FormatJSON {
		v, err := e.data.payload(viewID)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	doc, err := e.data.document(viewID)
	if err != nil {
		return err
	}

	switch format {
	case FormatMarkdown:
		return writeMarkdown(w, doc)
	case FormatHTML:
		return writeHTML(w, doc)
	case FormatCSV:
		return writeCSV(w, doc)
	case FormatPDF:
		return writePDF(w, doc)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
