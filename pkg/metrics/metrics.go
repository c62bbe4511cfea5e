package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_api_requests_total",
			Help: "Total number of game API requests",
		},
		[]string{"endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_api_request_duration_seconds",
			Help:    "Game API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_notifications_total",
			Help: "Total number of notifications shown",
		},
		[]string{"severity"},
	)

	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_refreshes_total",
			Help: "Total number of full player-data refreshes",
		},
		[]string{"result"},
	)

	StaleRefreshesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "client_stale_refreshes_dropped_total",
			Help: "Refresh responses discarded because a newer refresh superseded them",
		},
	)

	KVOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_kv_operations_total",
			Help: "Total number of durable key-value store operations",
		},
		[]string{"operation", "status"},
	)
)
