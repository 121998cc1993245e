package engine

import (
	"math"
	"testing"

	"github.com/atdash-org/atdash/dataset"
	"github.com/atdash-org/atdash/schema"
)

// ============================================================================
// SHARED FIXTURES + ASSERT HELPERS
// ============================================================================

// tripTable builds the canonical three-trip fixture used across the engine
// tests: two US trips with timestamps, one EU trip with a missing timestamp.
func tripTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.FromColumns(
		[]string{"Territory", "atd", "eater_request_time", "pickup_km", "dropoff_distance"},
		[][]dataset.Value{
			{dataset.StringValue("US"), dataset.StringValue("US"), dataset.StringValue("EU")},
			{dataset.NumberValue(10), dataset.NumberValue(20), dataset.NumberValue(30)},
			{
				dataset.StringValue("2024-01-01 10:30:00"), // Monday
				dataset.StringValue("2024-01-06 18:00:00"), // Saturday
				dataset.NullValue(),
			},
			{dataset.NumberValue(1.5), dataset.NumberValue(2.5), dataset.NumberValue(4.0)},
			{dataset.NumberValue(0.5), dataset.NumberValue(1.0), dataset.NumberValue(2.0)},
		},
	)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return tbl
}

// preparedTrips resolves and normalizes the trip fixture.
func preparedTrips(t *testing.T) (dataset.View, schema.Mapping) {
	t.Helper()
	tbl := tripTable(t)
	m := schema.Resolve(tbl.Columns())
	return Normalize(tbl, m).View(), m
}

func assertEqual(t *testing.T, got, want interface{}, msg string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

func assertFloat(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

func assertFloatPtr(t *testing.T, got *float64, want float64, msg string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %v", msg, want)
	}
	assertFloat(t, *got, want, msg)
}
