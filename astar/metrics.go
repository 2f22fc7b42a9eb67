package astar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchTotal counts searches by result: found, no_path or invalid.
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ahl_search_total",
		Help: "Total path searches by result",
	}, []string{"result"})

	// searchExpanded tracks nodes closed per search.
	searchExpanded = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ahl_search_expanded_nodes",
		Help:    "Nodes expanded per path search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 11), // 1 to ~1M
	})

	// searchStops counts searches that ended without a path, by reason.
	searchStops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ahl_search_stop_total",
		Help: "Searches ended without a path, by reason",
	}, []string{"reason"})

	// batchDuration tracks wall time of Batch calls.
	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ahl_batch_duration_seconds",
		Help:    "Batch search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~16s
	})
)

// record updates the search metrics for one outcome.
func record(res Result) {
	switch res.reason {
	case stopFound:
		searchTotal.WithLabelValues("found").Inc()
		searchExpanded.Observe(float64(res.Expanded))
	case stopInvalid:
		searchTotal.WithLabelValues("invalid").Inc()
	default:
		searchTotal.WithLabelValues("no_path").Inc()
		searchStops.WithLabelValues(res.reason.String()).Inc()
		searchExpanded.Observe(float64(res.Expanded))
	}
}
