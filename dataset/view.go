package dataset

// ============================================================================
// VIEW — Zero-copy row subset
// ============================================================================
// Filtering and grouping never copy cells: a View is the base table plus an
// optional index list. Sub-views of sub-views resolve to base-table row
// numbers at construction, so reads stay one indirection deep.
// ============================================================================

// View is a read-only subset of a Table's rows.
// The zero View is empty.
type View struct {
	table *Table
	rows  []int // nil = every row of table
	all   bool
}

// View returns a view spanning every row of the table.
func (t *Table) View() View {
	return View{table: t, all: true}
}

// Len returns the number of rows visible through the view.
func (v View) Len() int {
	if v.table == nil {
		return 0
	}
	if v.all {
		return v.table.rows
	}
	return len(v.rows)
}

// Table returns the underlying table, nil for the zero View.
func (v View) Table() *Table { return v.table }

// Cell returns the cell at view-relative row i, null when out of range or
// the column is absent.
func (v View) Cell(i int, name string) Value {
	if v.table == nil || i < 0 || i >= v.Len() {
		return NullValue()
	}
	if v.all {
		return v.table.Cell(i, name)
	}
	return v.table.Cell(v.rows[i], name)
}

// Sub returns a view restricted to the given view-relative indices.
// Indices are resolved to base-table rows, so chained Subs stay flat.
func (v View) Sub(indices []int) View {
	if v.table == nil {
		return View{}
	}
	resolved := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= v.Len() {
			continue
		}
		if v.all {
			resolved = append(resolved, i)
		} else {
			resolved = append(resolved, v.rows[i])
		}
	}
	return View{table: v.table, rows: resolved}
}
