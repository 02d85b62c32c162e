// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal  *prometheus.CounterVec   // labels: route, status
	HTTPRequestSeconds *prometheus.HistogramVec // labels: route

	// Journal metrics
	SchedulesUpserted prometheus.Counter
	SessionsRecorded  prometheus.Counter
	SessionsUpdated   prometheus.Counter
	PenaltiesApplied  prometheus.Counter

	// Feed metrics
	WSClients          prometheus.Gauge
	MarketCapFallbacks prometheus.Counter
}

// NewMetrics creates a Metrics instance registered on reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "trading_journal"
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		}, []string{"route", "status"}),
		HTTPRequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		SchedulesUpserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "schedules_upserted_total",
			Help:      "Total number of daily schedules created or replaced",
		}),
		SessionsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "sessions_recorded_total",
			Help:      "Total number of trading sessions created or replaced",
		}),
		SessionsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "sessions_updated_total",
			Help:      "Total number of trading sessions updated by id",
		}),
		PenaltiesApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "penalties_applied_total",
			Help:      "Total number of session writes that stored a non-zero penalty",
		}),
		WSClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Number of connected websocket clients",
		}),
		MarketCapFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketcap",
			Name:      "fallbacks_total",
			Help:      "Total number of market-cap fetches served from synthetic fallback data",
		}),
	}
}

// Handler returns the HTTP handler for the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
