package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fixture_http_requests_total",
			Help: "Total number of requests served by the fixture",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fixture_http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Health metrics
	SlowHealthReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fixture_slowhealthy_ready",
			Help: "1 once /slowhealthy reports healthy, 0 before",
		},
	)

	UptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fixture_uptime_seconds",
			Help: "Seconds since the fixture started, as of the last health probe",
		},
	)
)
