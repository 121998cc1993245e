package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atdash_http_requests_total",
		Help: "HTTP requests by path and status code.",
	}, []string{"path", "status"})

	dashboardBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "atdash_dashboard_build_seconds",
		Help:    "Time spent evaluating one dashboard pipeline.",
		Buckets: prometheus.DefBuckets,
	})
)
