package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadCSV parses CSV input with a header row into a Table. Cells that do
// not parse as numbers become NaN, so a column with stray text still binds
// as a numeric vector.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	names := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "col_" + strconv.Itoa(i)
		}
		names[i] = name
	}

	columns := make([][]float64, len(names))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		for i := range names {
			var cell string
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			columns[i] = append(columns[i], parseCell(cell))
		}
	}

	t := NewTable()
	for i, name := range names {
		if columns[i] == nil {
			columns[i] = []float64{}
		}
		if err := t.AddColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// parseCell converts a CSV cell to a float64; unparseable cells are NaN.
func parseCell(cell string) float64 {
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
