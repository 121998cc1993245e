package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for BuildDashboard()
// ============================================================================

// Option configures dashboard building via functional options pattern.
type Option func(*config)

type config struct {
	ATDColor      string
	TripsColor    string
	ScatterCap    int
	HistogramBins int
}

// WithColors overrides the ATD and trips series colors.
func WithColors(atd, trips string) Option {
	return func(c *config) {
		c.ATDColor = atd
		c.TripsColor = trips
	}
}

// WithScatterCap bounds the scatter sample size. Zero disables sampling.
func WithScatterCap(n int) Option {
	return func(c *config) {
		c.ScatterCap = n
	}
}

// WithHistogramBins sets the maximum histogram bin count.
func WithHistogramBins(n int) Option {
	return func(c *config) {
		c.HistogramBins = n
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		ATDColor:      DefaultATDColor,
		TripsColor:    DefaultTripsColor,
		ScatterCap:    200_000,
		HistogramBins: 50,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
