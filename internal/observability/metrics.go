package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchboard_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// BackendCallsTotal counts data-backend calls by table, operation and outcome.
	BackendCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchboard_backend_calls_total",
		Help: "Total number of data backend calls",
	}, []string{"mode", "table", "operation", "outcome"})

	// BackendCallLatency records data-backend call latency by table and operation.
	BackendCallLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matchboard_backend_call_latency_seconds",
		Help:    "Data backend call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode", "table", "operation"})

	// DashboardRefreshTotal counts dashboard refreshes by outcome.
	DashboardRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchboard_dashboard_refresh_total",
		Help: "Total number of dashboard refreshes",
	}, []string{"outcome"})

	// ToastsTotal counts toasts raised by variant.
	ToastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchboard_toasts_total",
		Help: "Total number of toasts raised",
	}, []string{"variant"})

	// ActiveSessions is the gauge of dashboard sessions held in memory.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchboard_active_sessions",
		Help: "Number of dashboard sessions held in memory",
	})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchboard_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchboard_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// TrackBackendCall returns a function that records the outcome and latency
// of one backend call when called (e.g. defer).
func TrackBackendCall(mode, table, operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		BackendCallsTotal.WithLabelValues(mode, table, operation, outcome).Inc()
		BackendCallLatency.WithLabelValues(mode, table, operation).Observe(time.Since(start).Seconds())
	}
}
