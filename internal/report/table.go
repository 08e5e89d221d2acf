// Package report ranks the filtered market snapshot and streak history into
// top-N leaderboards, and renders them as plain tabular structures for the
// presentation layer.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Table is an ordered-column tabular result handed to the presentation
// layer. The core has no knowledge of how it is displayed or exported.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// WriteCSV renders the table, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
