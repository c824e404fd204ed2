package engine

import (
	"fmt"
	"strings"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
)

// DataValidation is the outcome of checking an expression against a
// concrete data source before evaluating it.
type DataValidation struct {
	Valid       bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Available   []string `json:"available_variables"`
	Missing     []string `json:"missing_variables"`
	Suggestions []string `json:"suggestions"`
}

// ValidateWithData parses the expression and checks every variable against
// the source's columns. Unresolvable variables are errors; near-miss
// column names become suggestions. The synthetic index fallback still lets
// such an expression evaluate, so callers decide how hard to fail.
func (p *Processor) ValidateWithData(text string, source dataset.DataSource) DataValidation {
	v := DataValidation{
		Errors:      []string{},
		Warnings:    []string{},
		Available:   []string{},
		Missing:     []string{},
		Suggestions: []string{},
	}

	e, err := p.ParseExpression(text)
	if err != nil {
		v.Errors = append(v.Errors, err.Error())
		return v
	}

	columns := source.Columns()
	for _, name := range e.Variables {
		if _, ok := dataset.Resolve(name, source); ok {
			v.Available = append(v.Available, name)
			continue
		}
		v.Missing = append(v.Missing, name)
		v.Errors = append(v.Errors, fmt.Sprintf("variable %q not found in data", name))
		similar := similarColumns(name, columns)
		for _, col := range similar {
			v.Suggestions = append(v.Suggestions, fmt.Sprintf("did you mean %q for %q?", col, name))
		}
		if len(similar) == 0 {
			v.Suggestions = append(v.Suggestions,
				fmt.Sprintf("no column resembles %q; check the column name or use col_N positional access", name))
		}
	}

	if len(e.Variables) == 0 {
		v.Warnings = append(v.Warnings, "expression uses no data variables; result will be constant")
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// similarColumns returns columns whose lowercased name contains, or is
// contained by, the lowercased variable name.
func similarColumns(name string, columns []string) []string {
	lower := strings.ToLower(name)
	var out []string
	for _, col := range columns {
		colLower := strings.ToLower(col)
		if strings.Contains(colLower, lower) || strings.Contains(lower, colLower) {
			out = append(out, col)
		}
	}
	return out
}
