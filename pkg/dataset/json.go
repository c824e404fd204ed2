package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ReadJSON parses an array of flat JSON objects (records) into a Table.
// Column order follows first appearance across records. Missing or
// non-numeric fields become NaN; boolean true/false map to 1/0.
func ReadJSON(r io.Reader) (*Table, error) {
	var records []map[string]any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records in JSON input")
	}

	var names []string
	seen := map[string]bool{}
	for _, rec := range records {
		// Deterministic order within a record: sorted keys on first sight.
		for _, key := range sortedKeys(rec) {
			if !seen[key] {
				seen[key] = true
				names = append(names, key)
			}
		}
	}

	t := NewTable()
	for _, name := range names {
		values := make([]float64, len(records))
		for i, rec := range records {
			values[i] = numericField(rec, name)
		}
		if err := t.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func sortedKeys(rec map[string]any) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	// Insertion-sort; records are small.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// numericField coerces a record field to float64, NaN when absent or
// non-numeric.
func numericField(rec map[string]any, name string) float64 {
	v, ok := rec[name]
	if !ok || v == nil {
		return math.NaN()
	}
	switch x := v.(type) {
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}
