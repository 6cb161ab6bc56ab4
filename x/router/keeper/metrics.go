package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RouterMetrics holds the Prometheus metrics of the router module.
type RouterMetrics struct {
	TradesTotal  *prometheus.CounterVec
	TradeHops    prometheus.Histogram
	TradeLatency prometheus.Histogram
	RouteUpdates *prometheus.CounterVec
}

var (
	routerMetricsOnce sync.Once
	routerMetrics     *RouterMetrics
)

// NewRouterMetrics creates and registers router metrics (singleton pattern)
func NewRouterMetrics() *RouterMetrics {
	routerMetricsOnce.Do(func() {
		routerMetrics = &RouterMetrics{
			TradesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydrax",
					Subsystem: "router",
					Name:      "trades_total",
					Help:      "Total number of routed trades",
				},
				[]string{"direction", "status"},
			),
			TradeHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "hydrax",
					Subsystem: "router",
					Name:      "trade_hops",
					Help:      "Number of hops per executed route",
					Buckets:   []float64{1, 2, 3, 4, 5},
				},
			),
			TradeLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "hydrax",
					Subsystem: "router",
					Name:      "trade_latency_seconds",
					Help:      "Time spent executing a route",
					Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
				},
			),
			RouteUpdates: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydrax",
					Subsystem: "router",
					Name:      "route_updates_total",
					Help:      "Total number of default route updates",
				},
				[]string{"kind", "status"},
			),
		}
	})
	return routerMetrics
}
