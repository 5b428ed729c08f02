package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Store related metrics
	StoreOperations *prometheus.CounterVec
	StoreLatency    *prometheus.HistogramVec
	StoreSize       *prometheus.GaugeVec

	// Remote backend metrics
	RemoteRequests *prometheus.CounterVec
	RemoteLatency  *prometheus.HistogramVec
	RemoteDegraded *prometheus.CounterVec

	// Read cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		StoreOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of record store operations",
		}, []string{"kind", "operation", "status"}),
		StoreLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Duration of record store operations, including the simulated latency",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"kind", "operation"}),
		StoreSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_records",
			Help:      "Current number of records held per entity kind",
		}, []string{"kind"}),
		RemoteRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Total number of remote backend requests",
		}, []string{"table", "operation", "status"}),
		RemoteLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Duration of remote backend requests",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"table", "operation"}),
		RemoteDegraded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_degraded_reads_total",
			Help:      "Total number of reads downgraded to empty results after a remote failure",
		}, []string{"table"}),
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_cache_hits_total",
			Help:      "Total number of remote read cache hits",
		}, []string{"table"}),
		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_cache_misses_total",
			Help:      "Total number of remote read cache misses",
		}, []string{"table"}),
	}
}
