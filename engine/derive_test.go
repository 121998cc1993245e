package engine

import (
	"testing"
	"time"

	"github.com/atdash-org/atdash/dataset"
	"github.com/atdash-org/atdash/schema"
)

// ============================================================================
// NORMALIZER TESTS
// ============================================================================
// Tests cover:
//   1. Derived timestamp — parsed from the resolved column, null on failure
//   2. All-null timestamp column when the source never resolved
//   3. Numeric coercion of distance/metric columns
//   4. Temporal buckets — hour, ISO weekday (0=Mon), weekend flag
//   5. Pre-existing bucket columns are never clobbered
// ============================================================================

func TestNormalizeDerivesTimestamp(t *testing.T) {
	v, _ := preparedTrips(t)

	tm, ok := v.Cell(0, ColRequestTime).AsTime()
	if !ok {
		t.Fatal("row 0 timestamp should parse")
	}
	want := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	if !tm.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", tm, want)
	}

	if !v.Cell(2, ColRequestTime).IsNull() {
		t.Fatal("null source cell should derive a null timestamp")
	}
}

func TestNormalizeWithoutTimestampColumn(t *testing.T) {
	tbl, _ := dataset.FromColumns(
		[]string{"territory", "atd"},
		[][]dataset.Value{
			{dataset.StringValue("US")},
			{dataset.NumberValue(10)},
		},
	)
	m := schema.Resolve(tbl.Columns())
	out := Normalize(tbl, m)

	if !out.HasColumn(ColRequestTime) {
		t.Fatal("derived timestamp column must always exist")
	}
	if !out.Cell(0, ColRequestTime).IsNull() {
		t.Fatal("timestamp should be null when no source column resolved")
	}
	if !out.Cell(0, ColHourOfDay).IsNull() || !out.Cell(0, ColDayOfWeek).IsNull() || !out.Cell(0, ColIsWeekend).IsNull() {
		t.Fatal("buckets of a null timestamp should be null")
	}
}

func TestNormalizeCoercesNumericColumns(t *testing.T) {
	tbl, _ := dataset.FromColumns(
		[]string{"atd", "pickup_distance"},
		[][]dataset.Value{
			{dataset.StringValue("12.5"), dataset.StringValue("oops"), dataset.BoolValue(true), dataset.NumberValue(7)},
			{dataset.StringValue(" 3.25 "), dataset.NullValue(), dataset.BoolValue(false), dataset.StringValue("")},
		},
	)
	m := schema.Resolve(tbl.Columns())
	out := Normalize(tbl, m)

	if f, ok := out.Cell(0, "atd").AsNumber(); !ok || f != 12.5 {
		t.Errorf("numeric string should coerce, got %v, %v", f, ok)
	}
	if !out.Cell(1, "atd").IsNull() {
		t.Error("non-numeric string should coerce to null")
	}
	if f, _ := out.Cell(2, "atd").AsNumber(); f != 1 {
		t.Errorf("true should coerce to 1, got %v", f)
	}
	if f, _ := out.Cell(3, "atd").AsNumber(); f != 7 {
		t.Errorf("number should pass through, got %v", f)
	}
	if f, ok := out.Cell(0, "pickup_distance").AsNumber(); !ok || f != 3.25 {
		t.Errorf("padded numeric string should coerce, got %v, %v", f, ok)
	}
	if f, _ := out.Cell(2, "pickup_distance").AsNumber(); f != 0 {
		t.Errorf("false should coerce to 0, got %v", f)
	}
}

func TestNormalizeTemporalBuckets(t *testing.T) {
	v, _ := preparedTrips(t)

	// Row 0: Monday 10:30.
	if f, _ := v.Cell(0, ColHourOfDay).AsNumber(); f != 10 {
		t.Errorf("hour_of_day[0] = %v, want 10", f)
	}
	if f, _ := v.Cell(0, ColDayOfWeek).AsNumber(); f != 0 {
		t.Errorf("day_of_week[0] = %v, want 0 (Monday)", f)
	}
	if b, _ := v.Cell(0, ColIsWeekend).AsBool(); b {
		t.Error("Monday should not be weekend")
	}

	// Row 1: Saturday 18:00.
	if f, _ := v.Cell(1, ColDayOfWeek).AsNumber(); f != 5 {
		t.Errorf("day_of_week[1] = %v, want 5 (Saturday)", f)
	}
	if b, _ := v.Cell(1, ColIsWeekend).AsBool(); !b {
		t.Error("Saturday should be weekend")
	}
}

func TestIsoWeekdayMapping(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2024-01-01", 0}, // Monday
		{"2024-01-03", 2}, // Wednesday
		{"2024-01-06", 5}, // Saturday
		{"2024-01-07", 6}, // Sunday
	}
	for _, c := range cases {
		tm, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatalf("parse %s: %v", c.date, err)
		}
		if got := isoWeekday(tm); got != c.want {
			t.Errorf("isoWeekday(%s) = %d, want %d", c.date, got, c.want)
		}
	}
}

func TestNormalizePreservesExistingBuckets(t *testing.T) {
	tbl, _ := dataset.FromColumns(
		[]string{"eater_request_time", "hour_of_day"},
		[][]dataset.Value{
			{dataset.StringValue("2024-01-01 10:30:00")},
			{dataset.NumberValue(99)},
		},
	)
	m := schema.Resolve(tbl.Columns())
	out := Normalize(tbl, m)

	if f, _ := out.Cell(0, ColHourOfDay).AsNumber(); f != 99 {
		t.Fatalf("pre-existing hour_of_day was clobbered: %v", f)
	}
	// The other buckets still get derived.
	if f, _ := out.Cell(0, ColDayOfWeek).AsNumber(); f != 0 {
		t.Fatalf("day_of_week = %v, want 0", f)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	tbl := tripTable(t)
	before := tbl.Columns()
	Normalize(tbl, schema.Resolve(tbl.Columns()))
	after := tbl.Columns()

	if len(before) != len(after) {
		t.Fatalf("input table gained columns: %v → %v", before, after)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-05T08:15:30Z", time.Date(2024, 3, 5, 8, 15, 30, 0, time.UTC)},
		{"2024-03-05T08:15:30.5", time.Date(2024, 3, 5, 8, 15, 30, 500000000, time.UTC)},
		{"2024-03-05 08:15:30", time.Date(2024, 3, 5, 8, 15, 30, 0, time.UTC)},
		{"2024-03-05 08:15", time.Date(2024, 3, 5, 8, 15, 0, 0, time.UTC)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024/03/05 08:15:30", time.Date(2024, 3, 5, 8, 15, 30, 0, time.UTC)},
		{"03/05/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := ParseTimestamp(dataset.StringValue(c.raw))
		if !ok {
			t.Errorf("ParseTimestamp(%q) failed", c.raw)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestParseTimestampRejects(t *testing.T) {
	for _, v := range []dataset.Value{
		dataset.StringValue("yesterday"),
		dataset.NumberValue(1700000000),
		dataset.BoolValue(true),
		dataset.NullValue(),
	} {
		if _, ok := ParseTimestamp(v); ok {
			t.Errorf("ParseTimestamp(%v kind %d) should fail", v.Text(), v.Kind())
		}
	}
}

func TestParseTimestampPassthrough(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got, ok := ParseTimestamp(dataset.TimeValue(want))
	if !ok || !got.Equal(want) {
		t.Fatalf("timestamp cell should pass through, got %v, %v", got, ok)
	}
}
