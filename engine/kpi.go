package engine

import (
	"math"
	"sort"

	"github.com/atdash-org/atdash/dataset"
)

// ============================================================================
// KPI CALCULATOR — count / mean / median / p90 of one numeric column
// ============================================================================

// KPI reduces a view's numeric column to its headline statistics. An empty
// column name (unresolved canonical key), a missing column, or zero
// non-null values all yield count 0 with nil statistics.
func KPI(v dataset.View, column string) KPISummary {
	if column == "" || v.Table() == nil || !v.Table().HasColumn(column) {
		return KPISummary{}
	}

	values := numericValues(v, column)
	if len(values) == 0 {
		return KPISummary{}
	}

	sort.Float64s(values)

	var sum float64
	for _, f := range values {
		sum += f
	}
	mean := sum / float64(len(values))
	median := Percentile(values, 0.5)
	p90 := Percentile(values, 0.9)

	return KPISummary{
		Count:  len(values),
		Mean:   &mean,
		Median: &median,
		P90:    &p90,
	}
}

// Percentile computes the q-quantile of an ascending-sorted slice using
// linear interpolation between closest ranks. q is clamped to [0,1].
func Percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	rank := q * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// numericValues collects the non-null numeric cells of a column.
func numericValues(v dataset.View, column string) []float64 {
	out := make([]float64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if f, ok := v.Cell(i, column).AsNumber(); ok {
			out = append(out, f)
		}
	}
	return out
}
