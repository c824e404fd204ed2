package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Binding maps expression variable names to concrete data vectors.
type Binding map[string][]float64

// ColumnNotFoundError reports a variable that resolved to no column. The
// default Bind policy suppresses it in favor of a synthetic sequence; it
// exists for callers that diagnose bindings explicitly.
type ColumnNotFoundError struct {
	Variable string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("no column for variable %q", e.Variable)
}

// Bind resolves each variable against the data source. Resolution order:
// exact column name, the literal "index" (row index sequence), positional
// "col_N" access, and finally a synthetic ascending sequence 0..rows-1.
//
// The synthetic fallback is deliberate policy: an unresolved name becomes
// the row index rather than an error. Callers that want hard failures
// should diagnose with Resolve before binding.
func Bind(variables []string, source DataSource) Binding {
	binding := make(Binding, len(variables))
	for _, name := range variables {
		if values, ok := Resolve(name, source); ok {
			binding[name] = values
		} else {
			binding[name] = indexSequence(source.RowCount())
		}
	}
	return binding
}

// Resolve attempts to resolve a single variable without the synthetic
// fallback. It reports whether the name resolved.
func Resolve(name string, source DataSource) ([]float64, bool) {
	if values, ok := source.Column(name); ok {
		return values, true
	}
	if name == "index" {
		return indexSequence(source.RowCount()), true
	}
	if idx, ok := positionalIndex(name); ok {
		cols := source.Columns()
		if idx >= 0 && idx < len(cols) {
			return source.Column(cols[idx])
		}
	}
	return nil, false
}

// positionalIndex parses a "col_N" accessor into the zero-based position N.
func positionalIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "col_")
	if !ok || rest == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// indexSequence returns the ascending sequence 0..n-1.
func indexSequence(n int) []float64 {
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = float64(i)
	}
	return seq
}
