package main

import (
	"github.com/spf13/cobra"

	"github.com/atdash-org/atdash/config"
	"github.com/atdash-org/atdash/engine"
	"github.com/atdash-org/atdash/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load configured datasets and serve the dashboard API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := setLogLevel(cfg.LogLevel); err != nil {
			return err
		}

		store, err := server.LoadSources(cfg.Sources)
		if err != nil {
			return err
		}

		srvCfg := server.DefaultConfig()
		srvCfg.Addr = cfg.Addr

		srv := server.New(srvCfg, store,
			engine.WithColors(cfg.ATDColor, cfg.TripsColor),
			engine.WithScatterCap(cfg.ScatterCap),
			engine.WithHistogramBins(cfg.HistogramBins),
		)
		return srv.Run(cmd.Context())
	},
}
