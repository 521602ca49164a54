package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding and search Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sokoni",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sokoni",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sokoni",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sokoni",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sokoni",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sokoni",
			Name:      "search_requests_total",
			Help:      "Total number of catalog searches and recommendations",
		},
		[]string{"kind", "status"}, // kind: "search" / "recommend"
	)

	SearchHitsFiltered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sokoni",
			Name:      "search_hits_filtered_total",
			Help:      "KNN hits discarded by post-retrieval attribute filters",
		},
		[]string{"filter"},
	)
)

var coreMetricsRegistered bool

// RegisterCoreMetrics registers Prometheus metrics. Must be called once from main.
func RegisterCoreMetrics() {
	if coreMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchHitsFiltered)
	coreMetricsRegistered = true
}
