package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/atdash-org/atdash/dataset"
)

// ============================================================================
// CHART BUILDERS — AggRows / views → render-ready ChartConfig
// ============================================================================
// Everything here is presentation prep: display ordering, label mapping,
// binning, sampling. The aggregation semantics live in aggregators.go.
// ============================================================================

// Dashboard color constants, overridable via options.
const (
	DefaultATDColor   = "#03c167"
	DefaultTripsColor = "#ffc043"
)

// weekdayNames is the display order for the day-of-week breakdown.
var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildMeanBarChart renders the mean column of aggregate rows as a bar
// chart. Rows with no mean (all-null metric) are skipped. A non-nil order
// reindexes rows to that label order first.
func BuildMeanBarChart(rows []AggRow, title, xAxis, color string, order []string) *ChartConfig {
	if order != nil {
		rows = Reindex(rows, order)
	}
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		if r.Mean == nil {
			continue
		}
		points = append(points, ChartPoint{Label: r.Label, Value: RoundTo2(*r.Mean)})
	}
	if len(points) == 0 {
		return nil
	}
	return &ChartConfig{
		ChartType: "bar",
		Title:     title,
		XAxis:     xAxis,
		YAxis:     "ATD (mean)",
		Series:    []ChartSeries{{Name: "ATD mean", Data: points, Color: color}},
		Colors:    []string{color},
		ShowGrid:  true,
	}
}

// BuildCountBarChart renders the row count of aggregate rows as a bar chart.
func BuildCountBarChart(rows []AggRow, title, xAxis, color string, order []string) *ChartConfig {
	if order != nil {
		rows = Reindex(rows, order)
	}
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{Label: r.Label, Value: float64(r.Count)})
	}
	if len(points) == 0 {
		return nil
	}
	return &ChartConfig{
		ChartType: "bar",
		Title:     title,
		XAxis:     xAxis,
		YAxis:     "Trips",
		Series:    []ChartSeries{{Name: "Trips", Data: points, Color: color}},
		Colors:    []string{color},
		ShowGrid:  true,
	}
}

// BuildDailyChart produces the dual-axis daily series: ATD mean on the left
// axis, trip count on the right, one point per calendar day. Returns nil
// when the view has no parsed timestamps.
func BuildDailyChart(v dataset.View, metric, atdColor, tripsColor string) *ChartConfig {
	type day struct {
		sum     float64
		nonNull int
		count   int
	}

	days := make(map[string]*day)
	for i := 0; i < v.Len(); i++ {
		tm, ok := v.Cell(i, ColRequestTime).AsTime()
		if !ok {
			continue
		}
		label := tm.Format("2006-01-02")
		d, ok := days[label]
		if !ok {
			d = &day{}
			days[label] = d
		}
		d.count++
		if f, ok := v.Cell(i, metric).AsNumber(); ok {
			d.sum += f
			d.nonNull++
		}
	}
	if len(days) == 0 {
		return nil
	}

	labels := make([]string, 0, len(days))
	for label := range days {
		labels = append(labels, label)
	}
	sort.Strings(labels) // ISO dates sort chronologically

	atd := make([]ChartPoint, 0, len(labels))
	trips := make([]ChartPoint, 0, len(labels))
	for _, label := range labels {
		d := days[label]
		if d.nonNull > 0 {
			atd = append(atd, ChartPoint{Label: label, Value: RoundTo2(d.sum / float64(d.nonNull))})
		}
		trips = append(trips, ChartPoint{Label: label, Value: float64(d.count)})
	}

	return &ChartConfig{
		ChartType: "line",
		Title:     "Daily ATD and Trips",
		XAxis:     "Date",
		YAxis:     "ATD (mean)",
		Y2Axis:    "Trips",
		Series: []ChartSeries{
			{Name: "ATD mean", Data: atd, Color: atdColor, Axis: "left"},
			{Name: "Trips", Data: trips, Color: tripsColor, Axis: "right"},
		},
		Colors:     []string{atdColor, tripsColor},
		ShowLegend: true,
		ShowGrid:   true,
	}
}

// BuildHistogram bins a numeric column into at most maxBins equal-width
// buckets. Returns nil when the column has no numeric values.
func BuildHistogram(v dataset.View, column, title, color string, maxBins int) *ChartConfig {
	values := numericValues(v, column)
	if len(values) == 0 {
		return nil
	}
	if maxBins < 1 {
		maxBins = 1
	}

	min, max := values[0], values[0]
	for _, f := range values {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}

	bins := maxBins
	if max == min {
		bins = 1
	}
	width := (max - min) / float64(bins)
	counts := make([]int, bins)
	for _, f := range values {
		i := bins - 1
		if width > 0 {
			i = int((f - min) / width)
			if i >= bins {
				i = bins - 1 // max lands in the last bin
			}
		}
		counts[i]++
	}

	points := make([]ChartPoint, 0, bins)
	for i, c := range counts {
		lo := min + float64(i)*width
		hi := lo + width
		points = append(points, ChartPoint{
			Label: fmt.Sprintf("%s–%s", fmtNum(lo), fmtNum(hi)),
			Value: float64(c),
		})
	}

	return &ChartConfig{
		ChartType: "area",
		Title:     title,
		XAxis:     "ATD",
		YAxis:     "Trips (n)",
		Series:    []ChartSeries{{Name: "Trips (n)", Data: points, Color: color}},
		Colors:    []string{color},
		ShowGrid:  true,
	}
}

// BuildScatter samples rows where x, y, and size are all non-null. Above
// limit points, a deterministic stride sample keeps the cloud bounded.
func BuildScatter(v dataset.View, xCol, yCol, sizeCol, title, color string, limit int) *ScatterConfig {
	points := make([]ScatterPoint, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		x, ok := v.Cell(i, xCol).AsNumber()
		if !ok {
			continue
		}
		y, ok := v.Cell(i, yCol).AsNumber()
		if !ok {
			continue
		}
		size, ok := v.Cell(i, sizeCol).AsNumber()
		if !ok {
			continue
		}
		points = append(points, ScatterPoint{X: x, Y: y, Size: size})
	}
	if len(points) == 0 {
		return nil
	}

	sampled := false
	if limit > 0 && len(points) > limit {
		step := float64(len(points)) / float64(limit)
		out := make([]ScatterPoint, 0, limit)
		for i := 0; i < limit; i++ {
			out = append(out, points[int(float64(i)*step)])
		}
		points = out
		sampled = true
	}

	return &ScatterConfig{
		Title:   title,
		XAxis:   "Pickup distance",
		YAxis:   "Dropoff distance",
		Color:   color,
		Sampled: sampled,
		Points:  points,
	}
}

// ============================================================================
// LABEL MAPPING — presentation relabeling of derived bucket values
// ============================================================================

// RelabelWeekdays maps day-of-week rows (labels "0".."6") onto Mon..Sun.
func RelabelWeekdays(rows []AggRow) []AggRow {
	out := append([]AggRow(nil), rows...)
	for i, r := range out {
		if f, ok := r.Group.AsNumber(); ok {
			d := int(f)
			if d >= 0 && d < len(weekdayNames) {
				out[i].Label = weekdayNames[d]
			}
		}
	}
	return out
}

// RelabelWeekend maps weekend-flag rows onto "Weekend"/"Weekday".
func RelabelWeekend(rows []AggRow) []AggRow {
	out := append([]AggRow(nil), rows...)
	for i, r := range out {
		if b, ok := r.Group.AsBool(); ok {
			if b {
				out[i].Label = "Weekend"
			} else {
				out[i].Label = "Weekday"
			}
		}
	}
	return out
}

// WeekdayOrder returns the Mon→Sun display order.
func WeekdayOrder() []string {
	return append([]string(nil), weekdayNames...)
}

// HourOrder returns the 0→23 display order.
func HourOrder() []string {
	out := make([]string, 24)
	for h := 0; h < 24; h++ {
		out[h] = fmt.Sprintf("%d", h)
	}
	return out
}

// WeekendOrder returns the Weekday→Weekend display order.
func WeekendOrder() []string {
	return []string{"Weekday", "Weekend"}
}

// ============================================================================
// FORMATTING
// ============================================================================

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fmtNum renders whole numbers without decimals, everything else with two.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
