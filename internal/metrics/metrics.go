// Package metrics provides Prometheus instrumentation for the pool engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SwapsTotal counts executed token exchanges, partitioned by pool.
	SwapsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stableswap_swaps_total",
		Help: "Total number of token exchanges executed",
	}, []string{"pool_id"})

	// SwapLatency tracks exchange execution latency.
	SwapLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stableswap_swap_latency_seconds",
		Help:    "Token exchange execution latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"pool_id"})

	// LiquidityOpsTotal counts add/remove liquidity operations by kind.
	LiquidityOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stableswap_liquidity_ops_total",
		Help: "Total liquidity add/remove operations",
	}, []string{"pool_id", "kind"})

	// ActivePools tracks the number of pools currently live.
	ActivePools = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stableswap_active_pools",
		Help: "Number of currently active pools",
	})

	// VirtualPrice is a per-pool virtual-price gauge. Like the other
	// pool-level metrics in this block, nothing in this module sets it;
	// only the HTTP request metrics below are recorded (by Middleware).
	VirtualPrice = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stableswap_virtual_price",
		Help: "Pool virtual price scaled to 1e18",
	}, []string{"pool_id"})

	// AmplificationCoefficient tracks each pool's effective A.
	AmplificationCoefficient = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stableswap_amplification_coefficient",
		Help: "Effective amplification coefficient A",
	}, []string{"pool_id"})

	// GovernanceActionsTotal counts ramp/fee/kill governance actions.
	GovernanceActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stableswap_governance_actions_total",
		Help: "Total governance actions applied",
	}, []string{"pool_id", "action"})

	// RejectedOperationsTotal counts operations rejected by pool
	// invariant checks (slippage, kill switch, validation errors).
	RejectedOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stableswap_rejected_operations_total",
		Help: "Operations rejected by pool invariants",
	}, []string{"pool_id", "reason"})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stableswap_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stableswap_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stableswap_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the route pattern for path label to avoid high cardinality.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
