package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pickup_route"

// Domain metrics. They are usable before Register is called; registration
// only exposes them on /metrics.
var (
	LocateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "locate_duration_seconds",
			Help:      "Order lookup duration across all partitions",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"result"}, // "found" / "not_found"
	)

	PartitionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partition_failures_total",
			Help:      "Partitions that could not be scanned during an order lookup",
		},
		[]string{"partition"},
	)

	RouteSolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_solve_duration_seconds",
			Help:      "Exhaustive route search duration by pickup count",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		},
		[]string{"pickups"},
	)

	RouteCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_cache_total",
			Help:      "Route cache hits, misses and errors",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)
)

var registerOnce sync.Once

// Register registers domain and HTTP metrics with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			LocateDuration,
			PartitionFailuresTotal,
			RouteSolveDuration,
			RouteCacheTotal,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
