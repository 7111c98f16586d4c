package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AggregationDuration times the caller-facing catalog operations.
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bazaar_aggregation_duration_seconds",
			Help:    "Duration of catalog aggregation operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	AggregationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bazaar_aggregation_errors_total",
			Help: "Catalog aggregation operations that failed",
		},
		[]string{"operation"},
	)

	ItemsEnriched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bazaar_items_enriched_total",
			Help: "Catalog items enriched with engagement signals",
		},
	)

	ViewsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bazaar_views_recorded_total",
			Help: "Item page views written to the store",
		},
	)
)

// Track returns a func that records the duration of op and, when *err is
// non-nil at that point, counts a failure. Use with defer:
//
//	defer metrics.Track("list_items", &err)()
func Track(op string, err *error) func() {
	start := time.Now()
	return func() {
		AggregationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil && *err != nil {
			AggregationErrors.WithLabelValues(op).Inc()
		}
	}
}
