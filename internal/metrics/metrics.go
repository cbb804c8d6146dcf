package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preonboarding_requests_total",
			Help: "Total number of API requests handled",
		},
		[]string{"endpoint", "status"},
	)

	ValidationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preonboarding_validation_failures_total",
			Help: "Total number of requests rejected by validation",
		},
	)

	DuplicateRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preonboarding_duplicate_requests_total",
			Help: "Total number of requests rejected as duplicate candidate/offer pairs",
		},
	)

	AuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preonboarding_auth_failures_total",
			Help: "Total number of requests rejected by header authentication",
		},
	)

	// Storage metrics
	StorageDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "preonboarding_storage_duration_seconds",
			Help:    "Duration of record store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "preonboarding_search_results",
			Help:    "Number of records matched per search request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 200},
		},
	)
)
