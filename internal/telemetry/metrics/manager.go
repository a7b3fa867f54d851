package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterAPIRequests  *prometheus.CounterVec
	CounterAPIErrors    prometheus.Counter
	CounterCacheHits    prometheus.Counter
	CounterCacheMisses  prometheus.Counter
	CounterStoreActions *prometheus.CounterVec

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fittrack", "test_client", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fittrack", "test_client", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterAPIRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "api_request",
		Help:      "The total number of outgoing backend API requests",
	}, []string{"method", "status"})
	counterAPIErrors := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "api_errors",
		Help:      "The total number of failed backend API requests",
	})
	counterCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "snapshot_cache_hits",
		Help:      "The total number of stats/feed snapshot cache hits",
	})
	counterCacheMisses := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "snapshot_cache_misses",
		Help:      "The total number of stats/feed snapshot cache misses",
	})
	counterStoreActions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_actions",
		Help:      "The total number of store actions per resource",
	}, []string{"resource", "action"})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "api_request_duration_seconds",
		Help:      "Histogram of backend API request durations in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method"})

	return &Manager{
		CounterAPIRequests:       counterAPIRequests,
		CounterAPIErrors:         counterAPIErrors,
		CounterCacheHits:         counterCacheHits,
		CounterCacheMisses:       counterCacheMisses,
		CounterStoreActions:      counterStoreActions,
		HistogramRequestDuration: histogramRequestDuration,
	}
}
