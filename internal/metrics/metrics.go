package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Matching Prometheus metrics.
var (
	RecommendationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentmatch",
			Name:      "recommendation_duration_seconds",
			Help:      "Recommendation request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)

	RecommendationResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentmatch",
			Name:      "recommendation_results_total",
			Help:      "Total number of ranked items returned",
		},
		[]string{"kind"},
	)

	IndexWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentmatch",
			Name:      "search_index_writes_total",
			Help:      "Search index upserts and rebuilds",
		},
		[]string{"table", "op", "status"}, // op: "upsert" / "rebuild"
	)

	IndexRowsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentmatch",
			Name:      "search_index_rows_written_total",
			Help:      "Rows written into the search index",
		},
		[]string{"table"},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Must be called
// once from main; repeated calls are ignored.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			RecommendationDuration,
			RecommendationResultsTotal,
			IndexWritesTotal,
			IndexRowsWritten,
		)
	})
}

// IndexWrite records one index operation outcome.
func IndexWrite(table, op string, rows int64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	IndexWritesTotal.WithLabelValues(table, op, status).Inc()
	if rows > 0 {
		IndexRowsWritten.WithLabelValues(table).Add(float64(rows))
	}
}
