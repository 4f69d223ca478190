// Package metrics holds the Prometheus collectors for the map service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_map"

var (
	// RenderCycles counts finished render cycles by what started them and how they ended
	RenderCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_cycles_total",
			Help:      "Render cycles that reached the page or failed, by origin and outcome",
		},
		[]string{"origin", "outcome"},
	)

	// RenderStale counts cycles whose results were discarded because a newer one was issued
	RenderStale = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_stale_total",
			Help:      "Render cycles superseded before they completed",
		},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of outbound API requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "outcome"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Connected page sessions",
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(RenderCycles)
	prometheus.MustRegister(RenderStale)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(HTTPRequests)
}

// ObserveFetch starts timing an outbound request. Call the returned func
// with a pointer to the request's error once it finishes:
//
//	defer metrics.ObserveFetch("ipinfo")(&err)
func ObserveFetch(provider string) func(errp *error) {
	start := time.Now()
	return func(errp *error) {
		outcome := "success"
		if errp != nil && *errp != nil {
			outcome = "failure"
		}
		ProviderRequestDuration.WithLabelValues(provider, outcome).Observe(time.Since(start).Seconds())
	}
}
