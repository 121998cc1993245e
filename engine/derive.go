package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/atdash-org/atdash/dataset"
	"github.com/atdash-org/atdash/schema"
)

// ============================================================================
// FIELD NORMALIZER — derived timestamp, numeric coercion, temporal buckets
// ============================================================================
// Normalize never mutates its input: every derived or coerced column lands
// on a copy-on-write Table, and every malformed cell becomes null rather
// than an error or a dropped row.
// ============================================================================

// Derived column names. ColRequestTime exists on every normalized table;
// the bucket columns are added only when the input doesn't already carry
// columns of those exact names.
const (
	ColRequestTime = "_eater_request_dt"
	ColHourOfDay   = "hour_of_day"
	ColDayOfWeek   = "day_of_week"
	ColIsWeekend   = "is_weekend"
)

// Normalize augments a table with the derived fields the filter engine and
// aggregators need:
//   - a parsed request-timestamp column (all-null when the source is absent),
//   - numeric coercion of the pickup/dropoff/atd columns where present,
//   - hour-of-day [0,23], day-of-week [0=Mon..6=Sun], and weekend buckets.
func Normalize(t *dataset.Table, m schema.Mapping) *dataset.Table {
	rows := t.NumRows()
	out := t

	// Derived timestamp — always present after normalization.
	ts := make([]dataset.Value, rows)
	for i := range ts {
		ts[i] = dataset.NullValue()
	}
	if col, ok := m.Column(schema.KeyEaterRequestTS); ok {
		if src, ok := t.Column(col); ok {
			for i, v := range src {
				if parsed, ok := ParseTimestamp(v); ok {
					ts[i] = dataset.TimeValue(parsed)
				}
			}
		}
	}
	out = out.WithColumn(ColRequestTime, ts)

	// Numeric coercion — only for columns that resolved; absent columns are
	// not created.
	for _, key := range []schema.Key{schema.KeyPickupDistance, schema.KeyDropoffDistance, schema.KeyATD} {
		col, ok := m.Column(key)
		if !ok {
			continue
		}
		src, ok := out.Column(col)
		if !ok {
			continue
		}
		out = out.WithColumn(col, coerceNumeric(src))
	}

	// Temporal buckets — never clobber a column the input already carried.
	if !t.HasColumn(ColHourOfDay) {
		out = out.WithColumn(ColHourOfDay, bucketColumn(ts, func(tm time.Time) dataset.Value {
			return dataset.NumberValue(float64(tm.Hour()))
		}))
	}
	if !t.HasColumn(ColDayOfWeek) {
		out = out.WithColumn(ColDayOfWeek, bucketColumn(ts, func(tm time.Time) dataset.Value {
			return dataset.NumberValue(float64(isoWeekday(tm)))
		}))
	}
	if !t.HasColumn(ColIsWeekend) {
		out = out.WithColumn(ColIsWeekend, bucketColumn(ts, func(tm time.Time) dataset.Value {
			return dataset.BoolValue(isoWeekday(tm) >= 5)
		}))
	}

	return out
}

// bucketColumn derives one bucket per timestamp cell; null timestamps yield
// null buckets.
func bucketColumn(ts []dataset.Value, fn func(time.Time) dataset.Value) []dataset.Value {
	out := make([]dataset.Value, len(ts))
	for i, v := range ts {
		if tm, ok := v.AsTime(); ok {
			out[i] = fn(tm)
		} else {
			out[i] = dataset.NullValue()
		}
	}
	return out
}

// isoWeekday maps time.Weekday (Sunday=0) onto 0=Monday..6=Sunday.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// coerceNumeric converts a column to numbers: numbers pass through, numeric
// strings are parsed, booleans map to 1/0, everything else becomes null.
// Coercing an already-coerced column is a no-op.
func coerceNumeric(src []dataset.Value) []dataset.Value {
	out := make([]dataset.Value, len(src))
	for i, v := range src {
		out[i] = coerceCell(v)
	}
	return out
}

func coerceCell(v dataset.Value) dataset.Value {
	switch v.Kind() {
	case dataset.KindNumber:
		return v
	case dataset.KindString:
		s, _ := v.AsString()
		if f, ok := parseFloat(s); ok {
			return dataset.NumberValue(f)
		}
		return dataset.NullValue()
	case dataset.KindBool:
		b, _ := v.AsBool()
		if b {
			return dataset.NumberValue(1)
		}
		return dataset.NumberValue(0)
	default:
		return dataset.NullValue()
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// ============================================================================
// TIMESTAMP PARSING
// ============================================================================

// timestampLayouts are tried in order. Fractional seconds are optional in
// the layouts that carry them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseTimestamp interprets a cell as a timestamp. Timestamp cells pass
// through; string cells go through the permissive layout list; everything
// else (and every unparseable string) reports ok=false.
func ParseTimestamp(v dataset.Value) (time.Time, bool) {
	if tm, ok := v.AsTime(); ok {
		return tm, true
	}
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}
