package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// renderColumns renders named float64 columns in the configured format.
func renderColumns(w io.Writer, format string, cols []string, columns map[string][]float64) error {
	switch format {
	case "json":
		return renderColumnsJSON(w, cols, columns)
	case "csv":
		return renderColumnsCSV(w, cols, columns)
	default:
		return renderColumnsTable(w, cols, columns)
	}
}

func columnRows(cols []string, columns map[string][]float64) int {
	rows := 0
	for _, name := range cols {
		if len(columns[name]) > rows {
			rows = len(columns[name])
		}
	}
	return rows
}

func renderColumnsTable(w io.Writer, cols []string, columns map[string][]float64) error {
	rows := columnRows(cols, columns)
	if rows == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for i := 0; i < rows; i++ {
		row := make(table.Row, len(cols))
		for j, col := range cols {
			values := columns[col]
			if i < len(values) {
				row[j] = formatNumber(values[i])
			} else {
				row[j] = ""
			}
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", rows)
	return nil
}

func renderColumnsJSON(w io.Writer, cols []string, columns map[string][]float64) error {
	rows := columnRows(cols, columns)
	records := make([]map[string]any, rows)
	for i := 0; i < rows; i++ {
		rec := make(map[string]any, len(cols))
		for _, col := range cols {
			values := columns[col]
			if i < len(values) && !math.IsNaN(values[i]) && !math.IsInf(values[i], 0) {
				rec[col] = values[i]
			} else {
				rec[col] = nil
			}
		}
		records[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderColumnsCSV(w io.Writer, cols []string, columns map[string][]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}

	rows := columnRows(cols, columns)
	record := make([]string, len(cols))
	for i := 0; i < rows; i++ {
		for j, col := range cols {
			values := columns[col]
			if i < len(values) {
				record[j] = formatNumber(values[i])
			} else {
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatNumber renders a float compactly: integers without decimals, NaN
// and Inf by name.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
}

// renderJSON pretty-prints any value as JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
