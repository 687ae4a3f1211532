package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eseries",
			Name:      "search_requests_total",
			Help:      "Total number of combination searches",
		},
		[]string{"objective", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eseries",
			Name:      "search_duration_seconds",
			Help:      "Combination search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"objective"},
	)

	SearchCellsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eseries",
			Name:      "search_cells_total",
			Help:      "Total number of component pairs evaluated",
		},
		[]string{"objective"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eseries",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers Prometheus search metrics. Called from main; repeat calls are no-ops.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchCellsTotal)
		prometheus.MustRegister(SearchCacheTotal)
	})
}
