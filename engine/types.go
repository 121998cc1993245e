package engine

import (
	"time"

	"github.com/atdash-org/atdash/dataset"
)

// ============================================================================
// ENGINE TYPES
// ============================================================================
// The engine computes over dataset.View and emits render-ready structures.
// Nothing here knows about HTTP, files, or how a chart is actually drawn —
// the presentation layer consumes these as-is.
// ============================================================================

// ============================================================================
// FILTER SPECIFICATION
// ============================================================================

// TimeRange is an inclusive timestamp interval.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayRange builds a TimeRange from two calendar days, widening the upper
// bound to the end of its day (23:59:59.999) so same-day events are
// included. Callers building a FilterSpec from user-picked dates must go
// through here — the filter loop itself never adjusts bounds.
func DayRange(start, end time.Time) TimeRange {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
	return TimeRange{Start: s, End: e}
}

// NumberRange is an inclusive numeric interval.
type NumberRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSpec is a set of independent, optional predicates. A nil/empty
// field is a no-op that matches everything; predicates compose by AND.
type FilterSpec struct {
	Territory       []string
	GeoArchetype    []string
	CourierFlow     []string
	MerchantSurface []string

	RequestTime *TimeRange
	Pickup      *NumberRange
	Dropoff     *NumberRange
}

// IsEmpty reports whether no predicate is active.
func (s FilterSpec) IsEmpty() bool {
	return len(s.Territory) == 0 &&
		len(s.GeoArchetype) == 0 &&
		len(s.CourierFlow) == 0 &&
		len(s.MerchantSurface) == 0 &&
		s.RequestTime == nil &&
		s.Pickup == nil &&
		s.Dropoff == nil
}

// ============================================================================
// KPI SUMMARY
// ============================================================================

// KPISummary holds the headline statistics of a numeric column.
// Mean/Median/P90 are nil when the column is absent or has no non-null
// values — never a fabricated zero.
type KPISummary struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	P90    *float64 `json:"p90"`
}

// ============================================================================
// AGGREGATE ROW
// ============================================================================

// AggRow is one group of an aggregation: the group value, the mean of the
// metric over the group's non-null values (nil when there are none), and
// the total row count of the group regardless of metric nullity.
type AggRow struct {
	Group dataset.Value `json:"group"`
	Label string        `json:"label"`
	Mean  *float64      `json:"mean"`
	Count int           `json:"count"`
}

// ============================================================================
// CHART TYPES — render-ready configs for the presentation layer
// ============================================================================

// ChartConfig defines how to render a chart. The presentation layer maps it
// onto whatever plotting stack it uses; the engine only fills in data.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "bar", "line", "area"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Y2Axis     string        `json:"y2Axis,omitempty"` // set for dual-axis charts
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
	Axis  string       `json:"axis,omitempty"` // "left" (default) or "right"
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterConfig carries a sampled point cloud (pickup vs dropoff distance,
// point size proportional to ATD).
type ScatterConfig struct {
	Title   string         `json:"title"`
	XAxis   string         `json:"xAxis"`
	YAxis   string         `json:"yAxis"`
	Color   string         `json:"color,omitempty"`
	Sampled bool           `json:"sampled"`
	Points  []ScatterPoint `json:"points"`
}

// ScatterPoint is one scatter sample.
type ScatterPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// ============================================================================
// DASHBOARD — output of one full pipeline evaluation
// ============================================================================

// SegmentCharts pairs the two charts rendered for one grouping dimension:
// average ATD per group and trip count per group.
type SegmentCharts struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	ATDMean *ChartConfig `json:"atdMean,omitempty"`
	Trips   *ChartConfig `json:"trips,omitempty"`
}

// Dashboard is the render-ready result of one resolve → normalize → filter →
// aggregate pass over a dataset.
type Dashboard struct {
	Columns      map[string]string `json:"columns"` // canonical key → resolved column
	TotalRows    int               `json:"totalRows"`
	FilteredRows int               `json:"filteredRows"`
	KPI          KPISummary        `json:"kpi"`

	Daily        *ChartConfig    `json:"daily,omitempty"`
	Segments     []SegmentCharts `json:"segments,omitempty"`
	Temporal     []SegmentCharts `json:"temporal,omitempty"`
	Distribution *ChartConfig    `json:"distribution,omitempty"`
	Scatter      *ScatterConfig  `json:"scatter,omitempty"`
}

// FilterOptions describes the filterable space of a dataset: the distinct
// values per categorical dimension and the date/distance bounds. The
// presentation layer builds its widgets from this.
type FilterOptions struct {
	Categories map[string][]string `json:"categories"`
	DateRange  *TimeRange          `json:"dateRange,omitempty"`
	Pickup     *NumberRange        `json:"pickup,omitempty"`
	Dropoff    *NumberRange        `json:"dropoff,omitempty"`
}
