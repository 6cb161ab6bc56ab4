package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DCAMetrics holds the Prometheus metrics of the dca module.
type DCAMetrics struct {
	Executions     *prometheus.CounterVec
	Failures       *prometheus.CounterVec
	Suspensions    prometheus.Counter
	Completions    prometheus.Counter
	Terminations   *prometheus.CounterVec
	BlockerLatency prometheus.Histogram
	DueSchedules   prometheus.Gauge
}

var (
	dcaMetricsOnce sync.Once
	dcaMetrics     *DCAMetrics
)

// NewDCAMetrics creates and registers dca metrics (singleton pattern)
func NewDCAMetrics() *DCAMetrics {
	dcaMetricsOnce.Do(func() {
		dcaMetrics = &DCAMetrics{
			Executions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydrax",
					Subsystem: "dca",
					Name:      "executions_total",
					Help:      "Total number of successful schedule executions",
				},
				[]string{"kind"},
			),
			Failures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydrax",
					Subsystem: "dca",
					Name:      "failures_total",
					Help:      "Total number of failed schedule executions",
				},
				[]string{"kind", "reason"},
			),
			Suspensions: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "hydrax",
					Subsystem: "dca",
					Name:      "suspensions_total",
					Help:      "Total number of suspended schedules",
				},
			),
			Completions: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "hydrax",
					Subsystem: "dca",
					Name:      "completions_total",
					Help:      "Total number of completed schedules",
				},
			),
			Terminations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydrax",
					Subsystem: "dca",
					Name:      "terminations_total",
					Help:      "Total number of terminated schedules",
				},
				[]string{"origin"},
			),
			BlockerLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "hydrax",
					Subsystem: "dca",
					Name:      "begin_blocker_duration_seconds",
					Help:      "Time spent executing due schedules",
					Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
				},
			),
			DueSchedules: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "hydrax",
					Subsystem: "dca",
					Name:      "due_schedules",
					Help:      "Number of schedules due in the last processed block",
				},
			),
		}
	})
	return dcaMetrics
}
