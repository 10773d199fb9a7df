package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cache metrics
	CacheRebuilds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dcdc_cache_rebuilds_total",
			Help: "Total number of successful cache rebuilds",
		},
	)

	CacheRebuildFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dcdc_cache_rebuild_failures_total",
			Help: "Total number of cache rebuilds aborted by a failed container listing",
		},
	)

	CacheRebuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dcdc_cache_rebuild_duration_seconds",
			Help:    "Cache rebuild duration in seconds, including the Docker round-trip",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheServices = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dcdc_cache_services",
			Help: "Number of service records in the cache after the last successful rebuild",
		},
	)

	// DNS metrics
	DNSQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcdc_dns_queries_total",
			Help: "Total number of DNS queries by record type and outcome",
		},
		[]string{"type", "outcome"},
	)

	DNSQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dcdc_dns_query_duration_seconds",
			Help:    "DNS query handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(CacheRebuilds)
	prometheus.MustRegister(CacheRebuildFailures)
	prometheus.MustRegister(CacheRebuildDuration)
	prometheus.MustRegister(CacheServices)
	prometheus.MustRegister(DNSQueries)
	prometheus.MustRegister(DNSQueryDuration)
}

// Query outcomes recorded in DNSQueries. "answered" covers responses with at
// least one address; "nodata" covers NOERROR responses with an empty answer
// section (known name, no data of the queried type).
const (
	OutcomeAnswered = "answered"
	OutcomeNoData   = "nodata"
	OutcomeNXDomain = "nxdomain"
	OutcomeRefused  = "refused"
)

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
