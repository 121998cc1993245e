package engine

import (
	"github.com/atdash-org/atdash/dataset"
	"github.com/atdash-org/atdash/schema"
)

// ============================================================================
// FILTER ENGINE — conjunction of optional predicates over a normalized view
// ============================================================================
// Single pass: every active predicate is checked per row in one loop, and
// the result is a zero-copy sub-view. A predicate whose source column never
// resolved is silently inactive — missing columns are a data condition, not
// an error.
// ============================================================================

type rowPredicate func(i int) bool

// Apply returns the sub-view of rows satisfying every active predicate in
// the spec. Empty input yields an empty view; an empty spec returns the
// view unchanged.
func Apply(v dataset.View, m schema.Mapping, spec FilterSpec) dataset.View {
	preds := buildPredicates(v, m, spec)
	if len(preds) == 0 {
		return v
	}

	n := v.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for _, pred := range preds {
			if !pred(i) {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}
	return v.Sub(indices)
}

func buildPredicates(v dataset.View, m schema.Mapping, spec FilterSpec) []rowPredicate {
	var preds []rowPredicate

	categorical := []struct {
		key    schema.Key
		values []string
	}{
		{schema.KeyTerritory, spec.Territory},
		{schema.KeyGeoArchetype, spec.GeoArchetype},
		{schema.KeyCourierFlow, spec.CourierFlow},
		{schema.KeyMerchantSurface, spec.MerchantSurface},
	}
	for _, c := range categorical {
		col, ok := m.Column(c.key)
		if !ok || len(c.values) == 0 {
			continue // absent column or unset filter: vacuously true
		}
		if p := membershipPredicate(v, col, c.values); p != nil {
			preds = append(preds, p)
		}
	}

	// Date range runs against the derived timestamp; a null timestamp never
	// satisfies an active range. Bound adjustment (end-of-day widening) is
	// the spec constructor's job — see DayRange.
	if spec.RequestTime != nil && m.Has(schema.KeyEaterRequestTS) {
		r := *spec.RequestTime
		preds = append(preds, func(i int) bool {
			tm, ok := v.Cell(i, ColRequestTime).AsTime()
			if !ok {
				return false
			}
			return !tm.Before(r.Start) && !tm.After(r.End)
		})
	}

	if spec.Pickup != nil {
		if col, ok := m.Column(schema.KeyPickupDistance); ok {
			preds = append(preds, rangePredicate(v, col, *spec.Pickup))
		}
	}
	if spec.Dropoff != nil {
		if col, ok := m.Column(schema.KeyDropoffDistance); ok {
			preds = append(preds, rangePredicate(v, col, *spec.Dropoff))
		}
	}

	return preds
}

// membershipPredicate passes rows whose cell text is in the value set.
// Null cells never match.
func membershipPredicate(v dataset.View, col string, values []string) rowPredicate {
	set := make(map[string]bool, len(values))
	for _, val := range values {
		set[val] = true
	}
	return func(i int) bool {
		cell := v.Cell(i, col)
		if cell.IsNull() {
			return false
		}
		return set[cell.Text()]
	}
}

// rangePredicate passes rows whose numeric cell lies in [Min, Max], both
// ends inclusive. Null and non-numeric cells fail an active range.
func rangePredicate(v dataset.View, col string, r NumberRange) rowPredicate {
	return func(i int) bool {
		f, ok := v.Cell(i, col).AsNumber()
		return ok && f >= r.Min && f <= r.Max
	}
}
