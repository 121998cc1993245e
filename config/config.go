// Package config defines process configuration for the atdash service.
//
// Configuration layers, lowest precedence first: built-in defaults, an
// optional YAML file named by ATDASH_CONFIG, then ATDASH_* environment
// variables.
package config

import "github.com/atdash-org/atdash/engine"

// Source names one loadable dataset file.
type Source struct {
	// Name is the label shown to users, e.g. "Data Complete".
	Name string `koanf:"name"`

	// Path points at a .csv or .xlsx file.
	Path string `koanf:"path"`

	// Sheet selects a worksheet for xlsx sources; empty = first sheet.
	Sheet string `koanf:"sheet"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Sources lists the datasets served by this process.
	Sources []Source `koanf:"sources"`

	// ATDColor and TripsColor are the two series colors handed to the
	// presentation layer. Read-only display configuration, not state.
	ATDColor   string `koanf:"atd_color"`
	TripsColor string `koanf:"trips_color"`

	// ScatterCap bounds the scatter sample returned per dashboard.
	ScatterCap int `koanf:"scatter_cap"`

	// HistogramBins caps the ATD distribution bin count.
	HistogramBins int `koanf:"histogram_bins"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8080",
		ATDColor:      engine.DefaultATDColor,
		TripsColor:    engine.DefaultTripsColor,
		ScatterCap:    200_000,
		HistogramBins: 50,
	}
}
