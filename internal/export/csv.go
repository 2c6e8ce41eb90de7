package export

import (
	"encoding/csv"
	"io"
)

// writeCSV writes each table as a block: a title row, the header row and
// the data rows, separated by an empty record. Facts come first as
// label,value pairs.
func writeCSV(w io.Writer, doc Document) error {
	records := [][]string{{doc.Title, doc.Subtitle}}
	for _, f := range doc.Facts {
		records = append(records, []string{f.Label, f.Value})
	}
	for _, t := range doc.Tables {
		records = append(records, []string{}, []string{t.Title}, t.Headers)
		records = append(records, t.Rows...)
	}
	return csv.NewWriter(w).WriteAll(records)
}
