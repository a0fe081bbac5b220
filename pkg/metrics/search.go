package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the full search pipeline
	SearchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_pipeline_latency_seconds",
		Help:    "Latency of the hybrid search pipeline",
		Buckets: prometheus.DefBuckets,
	})

	// Search requests labeled by classified query type
	SearchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Total number of search requests by query type",
	}, []string{"query_type"})

	// Requests served in degraded mode, labeled by the surviving path
	SearchDegraded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_degraded_total",
		Help: "Total number of search requests served with a failed retrieval backend",
	}, []string{"mode"})

	// Total number of profile rebuilds
	ProfileRebuilds = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profile_rebuilds_total",
		Help: "Total number of user profile rebuilds",
	})
)

func Init() {
	prometheus.MustRegister(
		SearchLatency,
		SearchRequests,
		SearchDegraded,
		ProfileRebuilds,
	)
}
