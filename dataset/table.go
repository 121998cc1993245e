package dataset

import "fmt"

// ============================================================================
// TABLE — Columnar store with copy-on-write derivation
// ============================================================================
// A Table owns an ordered set of named columns of row-aligned Values.
// Tables are immutable after construction: WithColumn returns a new Table
// that shares every untouched column slice with its parent. That makes the
// normalization pipeline safe for concurrent readers without locking.
// ============================================================================

// Table is an ordered collection of named, row-aligned columns.
type Table struct {
	names []string
	index map[string]int
	cols  [][]Value
	rows  int
}

// FromColumns builds a Table from parallel column slices.
// Columns shorter than the longest are padded with nulls so every column
// stays row-aligned. Duplicate column names are an error.
func FromColumns(names []string, cols [][]Value) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("dataset: %d names for %d columns", len(names), len(cols))
	}

	rows := 0
	for _, c := range cols {
		if len(c) > rows {
			rows = len(c)
		}
	}

	index := make(map[string]int, len(names))
	padded := make([][]Value, len(cols))
	for i, name := range names {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("dataset: duplicate column %q", name)
		}
		index[name] = i
		padded[i] = padColumn(cols[i], rows)
	}

	return &Table{
		names: append([]string(nil), names...),
		index: index,
		cols:  padded,
		rows:  rows,
	}, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{index: map[string]int{}}
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return t.rows }

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// HasColumn reports whether a column exists under that exact name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the cells of a named column.
// Callers must not mutate the returned slice — it may be shared across
// derived tables.
func (t *Table) Column(name string) ([]Value, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Cell returns a single cell, null when the row or column is out of range.
func (t *Table) Cell(row int, name string) Value {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= t.rows {
		return NullValue()
	}
	return t.cols[i][row]
}

// WithColumn returns a new Table with the named column replaced or appended.
// Every other column slice is shared with the receiver — no data copy.
// vals is padded with nulls (or truncated) to the table's row count.
func (t *Table) WithColumn(name string, vals []Value) *Table {
	vals = padColumn(vals, t.rows)

	if i, ok := t.index[name]; ok {
		cols := append([][]Value(nil), t.cols...)
		cols[i] = vals
		return &Table{names: t.names, index: t.index, cols: cols, rows: t.rows}
	}

	names := append(append([]string(nil), t.names...), name)
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	cols := append(append([][]Value(nil), t.cols...), vals)
	return &Table{names: names, index: index, cols: cols, rows: t.rows}
}

func padColumn(vals []Value, rows int) []Value {
	if len(vals) == rows {
		return vals
	}
	if len(vals) > rows {
		return vals[:rows]
	}
	out := make([]Value, rows)
	copy(out, vals)
	for i := len(vals); i < rows; i++ {
		out[i] = NullValue()
	}
	return out
}
