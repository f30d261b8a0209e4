package metrics

import "github.com/prometheus/client_golang/prometheus"

// Match engine Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loupe",
			Name:      "match_requests_total",
			Help:      "Total match requests by resolving cascade tier",
		},
		[]string{"tier"},
	)

	MatchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "loupe",
			Name:      "match_candidates",
			Help:      "Scored candidate set size per match request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	MatchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loupe",
			Name:      "match_cache_total",
			Help:      "Match response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "loupe",
			Name:      "catalog_records",
			Help:      "Number of records in the loaded catalog snapshot",
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(MatchRequestsTotal)
	prometheus.MustRegister(MatchCandidates)
	prometheus.MustRegister(MatchCacheTotal)
	prometheus.MustRegister(CatalogRecords)
	engineMetricsRegistered = true
}
