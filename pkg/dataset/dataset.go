// Package dataset provides the tabular data abstraction the expression
// engine evaluates against: named float64 columns with a shared row count,
// plus CSV/JSON ingestion and variable binding.
package dataset

import "fmt"

// DataSource exposes named numeric columns and a row count. It is the only
// capability the evaluation core consumes from the ingestion layer.
type DataSource interface {
	// Columns returns the column names in insertion order.
	Columns() []string
	// Column returns the values for the named column.
	Column(name string) ([]float64, bool)
	// RowCount returns the number of rows.
	RowCount() int
}

// Table is an in-memory DataSource with insertion-ordered columns.
type Table struct {
	names   []string
	columns map[string][]float64
	rows    int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{columns: map[string][]float64{}}
}

// AddColumn appends a column. All columns must share the same length.
func (t *Table) AddColumn(name string, values []float64) error {
	if _, exists := t.columns[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(t.names) > 0 && len(values) != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.rows)
	}
	t.names = append(t.names, name)
	t.columns[name] = values
	t.rows = len(values)
	return nil
}

// Columns implements DataSource.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Column implements DataSource.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.columns[name]
	return col, ok
}

// RowCount implements DataSource.
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnAt returns the column at the zero-based position.
func (t *Table) ColumnAt(idx int) ([]float64, bool) {
	if idx < 0 || idx >= len(t.names) {
		return nil, false
	}
	return t.columns[t.names[idx]], true
}

// FromColumns builds a table from a name→values map with an explicit
// column order.
func FromColumns(order []string, columns map[string][]float64) (*Table, error) {
	t := NewTable()
	for _, name := range order {
		values, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("missing values for column %q", name)
		}
		if err := t.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}
