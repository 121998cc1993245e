package engine

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atdash-org/atdash/dataset"
	"github.com/atdash-org/atdash/schema"
)

// ============================================================================
// EXECUTOR — one full dashboard evaluation
// ============================================================================
// Pipeline:
//   1. Resolve column names → Mapping
//   2. Normalize (derived timestamp, coercions, buckets) — copy-on-write
//   3. Apply filters → zero-copy sub-view
//   4. KPI + per-dimension aggregates → chart configs
//
// Full recompute per call is the expected usage pattern; callers that hold
// a dataset across calls can normalize once with Prepare and reuse it.
// ============================================================================

// Prepared is a dataset with its column mapping resolved and derived fields
// computed. Resolution and normalization are pure functions of the raw
// table, so a Prepared can be built once per load and shared by every
// subsequent evaluation.
type Prepared struct {
	Raw        *dataset.Table
	Normalized *dataset.Table
	Mapping    schema.Mapping
}

// Prepare resolves and normalizes a raw table.
func Prepare(t *dataset.Table) (*Prepared, error) {
	if t == nil {
		return nil, errors.New("engine: nil dataset")
	}
	m := schema.Resolve(t.Columns())
	return &Prepared{
		Raw:        t,
		Normalized: Normalize(t, m),
		Mapping:    m,
	}, nil
}

// BuildDashboard runs the full pipeline over a raw table.
func BuildDashboard(t *dataset.Table, spec FilterSpec, opts ...Option) (*Dashboard, error) {
	p, err := Prepare(t)
	if err != nil {
		return nil, err
	}
	return p.Dashboard(spec, opts...), nil
}

// Dashboard evaluates a filter spec against a prepared dataset.
func (p *Prepared) Dashboard(spec FilterSpec, opts ...Option) *Dashboard {
	cfg := applyOptions(opts)

	view := p.Normalized.View()
	filtered := Apply(view, p.Mapping, spec)

	log.Debug().
		Int("total", view.Len()).
		Int("filtered", filtered.Len()).
		Bool("empty_spec", spec.IsEmpty()).
		Msg("dashboard evaluation")

	d := &Dashboard{
		Columns:      mappingColumns(p.Mapping),
		TotalRows:    view.Len(),
		FilteredRows: filtered.Len(),
	}

	atdCol, hasATD := p.Mapping.Column(schema.KeyATD)
	if !hasATD {
		return d // KPI stays zero/undefined; no charts without the metric
	}
	d.KPI = KPI(filtered, atdCol)

	d.Daily = BuildDailyChart(filtered, atdCol, cfg.ATDColor, cfg.TripsColor)
	d.Segments = p.segmentCharts(filtered, atdCol, cfg)
	d.Temporal = p.temporalCharts(filtered, atdCol, cfg)
	d.Distribution = BuildHistogram(filtered, atdCol, "ATD distribution", cfg.ATDColor, cfg.HistogramBins)

	pickupCol, hasPickup := p.Mapping.Column(schema.KeyPickupDistance)
	dropoffCol, hasDropoff := p.Mapping.Column(schema.KeyDropoffDistance)
	if hasPickup && hasDropoff {
		d.Scatter = BuildScatter(filtered, pickupCol, dropoffCol, atdCol,
			"ATD vs distances (Pickup vs Dropoff)", cfg.ATDColor, cfg.ScatterCap)
	}

	return d
}

// segmentCharts builds the ATD-mean/trips bar pair for every resolved
// business segmentation dimension.
func (p *Prepared) segmentCharts(v dataset.View, metric string, cfg *config) []SegmentCharts {
	var out []SegmentCharts
	for _, key := range schema.CategoricalKeys {
		col, ok := p.Mapping.Column(key)
		if !ok {
			continue
		}
		label := schema.DisplayName(key)
		rows := AggregateBy(v, col, metric)
		out = append(out, SegmentCharts{
			Key:     string(key),
			Label:   label,
			ATDMean: BuildMeanBarChart(rows, "Average ATD by "+label, label, cfg.ATDColor, nil),
			Trips:   BuildCountBarChart(rows, "Trips by "+label, label, cfg.TripsColor, nil),
		})
	}
	return out
}

// temporalCharts builds the day-of-week, hour-of-day, and weekend/weekday
// breakdown pairs. Display order and label mapping happen here — the
// aggregator itself is order-free.
func (p *Prepared) temporalCharts(v dataset.View, metric string, cfg *config) []SegmentCharts {
	var out []SegmentCharts

	if p.Normalized.HasColumn(ColDayOfWeek) {
		rows := RelabelWeekdays(AggregateBy(v, ColDayOfWeek, metric))
		out = append(out, SegmentCharts{
			Key:     ColDayOfWeek,
			Label:   "day of week",
			ATDMean: BuildMeanBarChart(rows, "Average ATD by day of week", "day of week", cfg.ATDColor, WeekdayOrder()),
			Trips:   BuildCountBarChart(rows, "Trips by day of week", "day of week", cfg.TripsColor, WeekdayOrder()),
		})
	}

	if p.Normalized.HasColumn(ColHourOfDay) {
		rows := AggregateBy(v, ColHourOfDay, metric)
		out = append(out, SegmentCharts{
			Key:     ColHourOfDay,
			Label:   "hour of day",
			ATDMean: BuildMeanBarChart(rows, "Average ATD by hour of day", "hour of day", cfg.ATDColor, HourOrder()),
			Trips:   BuildCountBarChart(rows, "Trips by hour of day", "hour of day", cfg.TripsColor, HourOrder()),
		})
	}

	if p.Normalized.HasColumn(ColIsWeekend) {
		rows := RelabelWeekend(AggregateBy(v, ColIsWeekend, metric))
		out = append(out, SegmentCharts{
			Key:     ColIsWeekend,
			Label:   "weekend vs weekday",
			ATDMean: BuildMeanBarChart(rows, "Average ATD by weekend vs weekday", "weekend vs weekday", cfg.ATDColor, WeekendOrder()),
			Trips:   BuildCountBarChart(rows, "Trips by weekend vs weekday", "weekend vs weekday", cfg.TripsColor, WeekendOrder()),
		})
	}

	return out
}

// ============================================================================
// FILTER OPTIONS
// ============================================================================

// FilterOptions reports the filterable space of a prepared dataset: sorted
// distinct values per resolved categorical dimension, the timestamp bounds,
// and floored/ceiled distance bounds (matching range-slider semantics).
func (p *Prepared) FilterOptions() *FilterOptions {
	view := p.Normalized.View()

	opts := &FilterOptions{Categories: make(map[string][]string)}
	for _, key := range schema.CategoricalKeys {
		if col, ok := p.Mapping.Column(key); ok {
			opts.Categories[string(key)] = UniqueValues(view, col)
		}
	}

	if lo, hi, ok := timeBounds(view, ColRequestTime); ok {
		opts.DateRange = &TimeRange{Start: lo, End: hi}
	}
	if col, ok := p.Mapping.Column(schema.KeyPickupDistance); ok {
		if lo, hi, ok := MinMax(view, col); ok {
			opts.Pickup = &NumberRange{Min: math.Floor(lo), Max: math.Ceil(hi)}
		}
	}
	if col, ok := p.Mapping.Column(schema.KeyDropoffDistance); ok {
		if lo, hi, ok := MinMax(view, col); ok {
			opts.Dropoff = &NumberRange{Min: math.Floor(lo), Max: math.Ceil(hi)}
		}
	}

	return opts
}

func timeBounds(v dataset.View, column string) (lo, hi time.Time, ok bool) {
	for i := 0; i < v.Len(); i++ {
		tm, isTime := v.Cell(i, column).AsTime()
		if !isTime {
			continue
		}
		if !ok || tm.Before(lo) {
			lo = tm
		}
		if !ok || tm.After(hi) {
			hi = tm
		}
		ok = true
	}
	return lo, hi, ok
}

func mappingColumns(m schema.Mapping) map[string]string {
	out := make(map[string]string, len(m))
	for key, col := range m {
		out[string(key)] = col
	}
	return out
}
