// Package atdash provides an analytics engine for delivery-trip datasets
// centered on the ATD (average time to deliver) metric.
//
// Usage:
//
//	import "github.com/atdash-org/atdash/engine"
//
//	table, _ := dataset.LoadFile("trips.csv")
//	dates := engine.DayRange(from, to)
//	dash, err := engine.BuildDashboard(table, engine.FilterSpec{
//	    Territory:   []string{"US"},
//	    RequestTime: &dates,
//	})
//
// The engine resolves inconsistent column headers onto canonical keys,
// derives normalized fields (timestamps, numeric coercions, temporal
// buckets), applies composable filters, and returns render-ready KPIs and
// chart configs. All computation is local and in-memory; the engine never
// touches the network.
package atdash
