package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	PipelineQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragdex",
			Name:      "pipeline_queries_total",
			Help:      "Total number of pipeline queries by embedding mode",
		},
		[]string{"mode"},
	)

	PipelineQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ragdex",
			Name:      "pipeline_query_duration_seconds",
			Help:      "End-to-end query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	CorpusChunks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ragdex",
			Name:      "corpus_chunks",
			Help:      "Number of chunks in the live corpus",
		},
	)
)

// RegisterPipelineMetrics registers the pipeline metrics explicitly.
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		PipelineQueriesTotal,
		PipelineQueryDuration,
		CorpusChunks,
	)
}
