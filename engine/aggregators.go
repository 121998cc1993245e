package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/atdash-org/atdash/dataset"
)

// ============================================================================
// AGGREGATOR — group by one dimension, reduce to (mean, count)
// ============================================================================
// Groups appear in first-seen row order; a fixed display order (weekday
// names, hours 0–23) is a presentation pass layered on top via Reindex.
// Null dimension values form their own group rather than vanishing.
// ============================================================================

// nullLabel is the display label for the null group.
const nullLabel = "(missing)"

// AggregateBy groups a view by a dimension column and reduces the metric
// column per group: mean over the group's non-null metric values (nil when
// there are none) and total row count of the group.
func AggregateBy(v dataset.View, dim, metric string) []AggRow {
	type bucket struct {
		row     int
		group   dataset.Value
		sum     float64
		nonNull int
		count   int
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)

	for i := 0; i < v.Len(); i++ {
		cell := v.Cell(i, dim)
		key := groupKey(cell)

		b, ok := buckets[key]
		if !ok {
			b = &bucket{row: i, group: cell}
			buckets[key] = b
			order = append(order, key)
		}
		b.count++
		if f, ok := v.Cell(i, metric).AsNumber(); ok {
			b.sum += f
			b.nonNull++
		}
	}

	rows := make([]AggRow, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		row := AggRow{
			Group: b.group,
			Label: groupLabel(b.group),
			Count: b.count,
		}
		if b.nonNull > 0 {
			mean := b.sum / float64(b.nonNull)
			row.Mean = &mean
		}
		rows = append(rows, row)
	}
	return rows
}

// groupKey builds a collision-safe map key: the kind tag keeps the string
// "1" and the number 1 in separate groups.
func groupKey(v dataset.Value) string {
	if v.IsNull() {
		return "\x00"
	}
	return fmt.Sprintf("%d|%s", v.Kind(), v.Text())
}

func groupLabel(v dataset.Value) string {
	if v.IsNull() {
		return nullLabel
	}
	return v.Text()
}

// Reindex reorders aggregate rows to an explicit label order. Rows whose
// label is not in the order keep their relative position at the tail.
// This is a presentation concern, not an aggregation guarantee.
func Reindex(rows []AggRow, order []string) []AggRow {
	byLabel := make(map[string]int, len(rows))
	for i, r := range rows {
		byLabel[r.Label] = i
	}

	out := make([]AggRow, 0, len(rows))
	used := make(map[int]bool, len(rows))
	for _, label := range order {
		if i, ok := byLabel[label]; ok && !used[i] {
			out = append(out, rows[i])
			used[i] = true
		}
	}
	for i, r := range rows {
		if !used[i] {
			out = append(out, r)
		}
	}
	return out
}

// UniqueValues returns the sorted distinct non-null values of a column,
// rendered as text. Used to populate categorical filter widgets.
func UniqueValues(v dataset.View, column string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < v.Len(); i++ {
		cell := v.Cell(i, column)
		if cell.IsNull() {
			continue
		}
		text := cell.Text()
		if !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	}
	sort.Strings(out)
	return out
}

// MinMax returns the smallest and largest non-null numeric values of a
// column; ok is false when there are none.
func MinMax(v dataset.View, column string) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for i := 0; i < v.Len(); i++ {
		if f, numeric := v.Cell(i, column).AsNumber(); numeric {
			if f < min {
				min = f
			}
			if f > max {
				max = f
			}
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}
