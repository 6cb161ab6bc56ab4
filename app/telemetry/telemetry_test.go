package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/paw-chain/hydrax/app/telemetry"
)

func TestConfigValidate(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Enabled = true
	require.NoError(t, cfg.Validate())

	cfg.SampleRate = 1.5
	require.ErrorContains(t, cfg.Validate(), "sample rate")

	cfg.SampleRate = 1
	cfg.OTLPEndpoint = ""
	require.ErrorContains(t, cfg.Validate(), "otlp endpoint is required")
}

func TestDisabledProvider(t *testing.T) {
	provider, err := telemetry.NewProvider(telemetry.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, provider.HealthCheck())
	require.NotNil(t, provider.Tracer())
	require.NotNil(t, provider.Meter())
	require.NoError(t, provider.Shutdown(context.Background()))

	var nilProvider *telemetry.Provider
	require.NoError(t, nilProvider.HealthCheck())
	require.NotNil(t, nilProvider.Tracer())
}

func TestBlockMetrics(t *testing.T) {
	reader := metricsdk.NewManualReader()
	meter := metricsdk.NewMeterProvider(metricsdk.WithReader(reader)).Meter("test")

	m, err := telemetry.NewBlockMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordMsg(ctx, "/dca.MsgSchedule", 3*time.Millisecond, true)
	m.RecordMsg(ctx, "/dca.MsgSchedule", time.Millisecond, false)
	m.RecordBlock(ctx, 12, 4)
	m.RecordModuleExecution(ctx, "dca", 2*time.Millisecond)

	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &data))
	require.Len(t, data.ScopeMetrics, 1)

	byName := make(map[string]metricdata.Aggregation)
	for _, metric := range data.ScopeMetrics[0].Metrics {
		byName[metric.Name] = metric.Data
	}

	msgs, ok := byName["hydrax.msg.total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, msgs.DataPoints, 2)

	height, ok := byName["hydrax.block.height"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Equal(t, int64(12), height.DataPoints[0].Value)

	require.Contains(t, byName, "hydrax.module.execution_time")
	require.Contains(t, byName, "hydrax.block.events")
}

func TestSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder)).Tracer("test")

	ctx, block := telemetry.StartBlockSpan(context.Background(), tracer, 3)
	_, module := telemetry.StartModuleSpan(ctx, tracer, "dca", "begin_block")
	telemetry.RecordError(module, errors.New("no liquidity"))
	module.End()
	_, msg := telemetry.StartMsgSpan(ctx, tracer, "/router.MsgSell", 3)
	telemetry.RecordError(msg, nil)
	msg.End()
	block.End()

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	require.Equal(t, "module.dca.begin_block", spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, "msg.deliver", spans[1].Name())
	require.Equal(t, codes.Unset, spans[1].Status().Code)
	require.Equal(t, "block.process", spans[2].Name())
	require.Equal(t, spans[2].SpanContext().SpanID(), spans[0].Parent().SpanID())
}
