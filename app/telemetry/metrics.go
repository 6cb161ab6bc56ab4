package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BlockMetrics records message delivery and block processing through an
// OpenTelemetry meter.
type BlockMetrics struct {
	msgCounter  metric.Int64Counter
	msgDuration metric.Float64Histogram
	blockHeight metric.Int64Gauge
	blockEvents metric.Int64Histogram
	moduleExec  metric.Float64Histogram
}

// NewBlockMetrics creates the block instruments on meter.
func NewBlockMetrics(meter metric.Meter) (*BlockMetrics, error) {
	msgCounter, err := meter.Int64Counter(
		"hydrax.msg.total",
		metric.WithDescription("Total number of delivered messages"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	msgDuration, err := meter.Float64Histogram(
		"hydrax.msg.processing_time",
		metric.WithDescription("Message processing time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	blockHeight, err := meter.Int64Gauge(
		"hydrax.block.height",
		metric.WithDescription("Current block height"),
		metric.WithUnit("{block}"),
	)
	if err != nil {
		return nil, err
	}

	blockEvents, err := meter.Int64Histogram(
		"hydrax.block.events",
		metric.WithDescription("Events emitted per block"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	moduleExec, err := meter.Float64Histogram(
		"hydrax.module.execution_time",
		metric.WithDescription("Module hook execution time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &BlockMetrics{
		msgCounter:  msgCounter,
		msgDuration: msgDuration,
		blockHeight: blockHeight,
		blockEvents: blockEvents,
		moduleExec:  moduleExec,
	}, nil
}

// RecordMsg records one message delivery.
func (m *BlockMetrics) RecordMsg(ctx context.Context, msgType string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	attrs := metric.WithAttributes(
		attribute.String("msg.type", msgType),
		attribute.String("msg.status", status),
	)
	m.msgCounter.Add(ctx, 1, attrs)
	m.msgDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordBlock records the committed height and its event count.
func (m *BlockMetrics) RecordBlock(ctx context.Context, height int64, events int) {
	m.blockHeight.Record(ctx, height)
	m.blockEvents.Record(ctx, int64(events))
}

// RecordModuleExecution records the time one module hook took.
func (m *BlockMetrics) RecordModuleExecution(ctx context.Context, moduleName string, duration time.Duration) {
	m.moduleExec.Record(ctx, float64(duration.Microseconds())/1000,
		metric.WithAttributes(attribute.String("module.name", moduleName)))
}
