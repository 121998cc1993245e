package engine

import (
	"testing"
	"time"

	"github.com/atdash-org/atdash/dataset"
)

// ============================================================================
// EXECUTOR TESTS
// ============================================================================

func TestPrepareNilTable(t *testing.T) {
	if _, err := Prepare(nil); err == nil {
		t.Fatal("expected error for nil table")
	}
}

func TestBuildDashboardFull(t *testing.T) {
	dash, err := BuildDashboard(tripTable(t), FilterSpec{})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}

	assertEqual(t, dash.TotalRows, 3, "total rows")
	assertEqual(t, dash.FilteredRows, 3, "filtered rows")
	assertEqual(t, dash.Columns["territory"], "Territory", "resolved territory column")
	assertEqual(t, dash.Columns["atd"], "atd", "resolved atd column")
	assertEqual(t, dash.Columns["eater_request_ts"], "eater_request_time", "resolved timestamp column")

	assertEqual(t, dash.KPI.Count, 3, "kpi count")
	assertFloatPtr(t, dash.KPI.Mean, 20, "kpi mean")
	assertFloatPtr(t, dash.KPI.P90, 28, "kpi p90")

	if dash.Daily == nil {
		t.Error("daily chart missing")
	}
	if dash.Distribution == nil {
		t.Error("distribution missing")
	}
	if dash.Scatter == nil {
		t.Error("scatter missing with both distance columns resolved")
	}

	// Only territory resolved among the business dimensions.
	assertEqual(t, len(dash.Segments), 1, "segment pair count")
	assertEqual(t, dash.Segments[0].Key, "territory", "segment key")
	assertEqual(t, dash.Segments[0].Label, "Territory", "segment label")
	if dash.Segments[0].ATDMean == nil || dash.Segments[0].Trips == nil {
		t.Error("segment charts incomplete")
	}

	// Derived buckets always exist, so all three temporal pairs render.
	assertEqual(t, len(dash.Temporal), 3, "temporal pair count")
	assertEqual(t, dash.Temporal[0].Key, ColDayOfWeek, "first temporal key")
	assertEqual(t, dash.Temporal[1].Key, ColHourOfDay, "second temporal key")
	assertEqual(t, dash.Temporal[2].Key, ColIsWeekend, "third temporal key")

	dow := dash.Temporal[0].ATDMean.Series[0].Data
	assertEqual(t, dow[0].Label, "Mon", "weekday order applied")
}

func TestBuildDashboardFiltered(t *testing.T) {
	dash, err := BuildDashboard(tripTable(t), FilterSpec{Territory: []string{"US"}})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	assertEqual(t, dash.TotalRows, 3, "total rows unaffected by filter")
	assertEqual(t, dash.FilteredRows, 2, "filtered rows")
	assertEqual(t, dash.KPI.Count, 2, "kpi count")
	assertFloatPtr(t, dash.KPI.Mean, 15, "kpi mean over US rows")
}

func TestBuildDashboardWithoutMetric(t *testing.T) {
	tbl, _ := dataset.FromColumns(
		[]string{"territory", "eater_request_time"},
		[][]dataset.Value{
			{dataset.StringValue("US")},
			{dataset.StringValue("2024-01-01")},
		},
	)
	dash, err := BuildDashboard(tbl, FilterSpec{})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}

	assertEqual(t, dash.FilteredRows, 1, "rows still counted")
	assertEqual(t, dash.KPI.Count, 0, "no kpi without the metric column")
	if dash.Daily != nil || dash.Segments != nil || dash.Temporal != nil || dash.Distribution != nil || dash.Scatter != nil {
		t.Fatal("no charts should render without the metric column")
	}
}

func TestBuildDashboardOptions(t *testing.T) {
	dash, err := BuildDashboard(tripTable(t), FilterSpec{},
		WithColors("#111111", "#222222"),
		WithScatterCap(2),
		WithHistogramBins(1),
	)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}

	assertEqual(t, dash.Daily.Series[0].Color, "#111111", "atd color override")
	assertEqual(t, dash.Daily.Series[1].Color, "#222222", "trips color override")
	assertEqual(t, len(dash.Scatter.Points), 2, "scatter cap applied")
	assertEqual(t, dash.Scatter.Sampled, true, "scatter marked sampled")
	assertEqual(t, len(dash.Distribution.Series[0].Data), 1, "histogram bin override")
}

func TestPreparedReuse(t *testing.T) {
	p, err := Prepare(tripTable(t))
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	full := p.Dashboard(FilterSpec{})
	us := p.Dashboard(FilterSpec{Territory: []string{"US"}})

	assertEqual(t, full.FilteredRows, 3, "full evaluation")
	assertEqual(t, us.FilteredRows, 2, "filtered evaluation over same prepared")
	assertEqual(t, p.Raw.NumRows(), 3, "raw table untouched")
}

func TestFilterOptions(t *testing.T) {
	p, err := Prepare(tripTable(t))
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	opts := p.FilterOptions()

	terr := opts.Categories["territory"]
	if len(terr) != 2 || terr[0] != "EU" || terr[1] != "US" {
		t.Fatalf("territory options = %v, want [EU US]", terr)
	}
	if _, ok := opts.Categories["merchant_surface"]; ok {
		t.Fatal("unresolved dimension should have no options entry")
	}

	if opts.DateRange == nil {
		t.Fatal("date range missing")
	}
	wantStart := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 1, 6, 18, 0, 0, 0, time.UTC)
	if !opts.DateRange.Start.Equal(wantStart) || !opts.DateRange.End.Equal(wantEnd) {
		t.Fatalf("date range = %v..%v", opts.DateRange.Start, opts.DateRange.End)
	}

	// Distance bounds are floored/ceiled to whole numbers.
	if opts.Pickup == nil || opts.Pickup.Min != 1 || opts.Pickup.Max != 4 {
		t.Fatalf("pickup bounds = %+v, want 1..4", opts.Pickup)
	}
	if opts.Dropoff == nil || opts.Dropoff.Min != 0 || opts.Dropoff.Max != 2 {
		t.Fatalf("dropoff bounds = %+v, want 0..2", opts.Dropoff)
	}
}

func TestFilterOptionsWithoutTimestamps(t *testing.T) {
	tbl, _ := dataset.FromColumns(
		[]string{"territory", "atd"},
		[][]dataset.Value{
			{dataset.StringValue("US")},
			{dataset.NumberValue(10)},
		},
	)
	p, err := Prepare(tbl)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	opts := p.FilterOptions()
	if opts.DateRange != nil {
		t.Fatal("no timestamps should yield no date range")
	}
	if opts.Pickup != nil || opts.Dropoff != nil {
		t.Fatal("unresolved distance columns should yield no bounds")
	}
}

func TestIsEmpty(t *testing.T) {
	if !(FilterSpec{}).IsEmpty() {
		t.Fatal("zero spec should be empty")
	}
	r := NumberRange{Min: 0, Max: 1}
	if (FilterSpec{Pickup: &r}).IsEmpty() {
		t.Fatal("spec with a range is not empty")
	}
	if (FilterSpec{Territory: []string{"US"}}).IsEmpty() {
		t.Fatal("spec with a membership filter is not empty")
	}
}
