package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP collectors are labelled by ServeMux route pattern, not raw path.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// CacheLookupsTotal counts resolved lookups by kind (currencies,
	// historical) and the tier that answered (memory, disk, remote).
	CacheLookupsTotal     *prometheus.CounterVec
	UpstreamFetchesTotal  *prometheus.CounterVec
	UpstreamFetchDuration *prometheus.HistogramVec
	CachedRateSets        prometheus.Gauge
}

// NewMetrics registers the collectors with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_cache_lookups_total",
				Help: "Total number of cache lookups by kind and answering tier",
			},
			[]string{"kind", "tier"},
		),

		UpstreamFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_api_fetches_total",
				Help: "Total number of upstream currency API calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		UpstreamFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "currency_api_fetch_duration_seconds",
				Help:    "Upstream currency API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),

		CachedRateSets: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "currency_cache_rate_sets",
				Help: "Number of historical rate sets held in memory",
			},
		),
	}
}
