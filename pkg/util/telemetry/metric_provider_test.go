package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/goleak"
)

func TestNewMeterProviderNoop(t *testing.T) {
	mp, stop, err := NewMeterProvider()
	require.NoError(t, err)
	require.IsType(t, metricnoop.MeterProvider{}, mp)
	require.NoError(t, stop(context.Background()))
}

func TestNewMeterProviderManualReader(t *testing.T) {
	reader := metricsdk.NewManualReader()
	mp, stop, err := NewMeterProvider(WithReader(reader))
	require.NoError(t, err)

	counter, err := mp.Meter("test").Int64Counter("test.counter")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.EqualValues(t, 3, sum.DataPoints[0].Value)

	require.NoError(t, stop(context.Background()))
}

func TestNewMeterProviderStdoutExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter, err := NewStdoutExporter(stdoutmetric.WithWriter(&buf))
	require.NoError(t, err)

	mp, stop, err := NewMeterProvider(WithExporter(exporter))
	require.NoError(t, err)

	histogram, err := mp.Meter("test").Int64Histogram("test.histogram")
	require.NoError(t, err)
	histogram.Record(context.Background(), 42)

	require.NoError(t, stop(context.Background()))
	require.Contains(t, buf.String(), "test.histogram")
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
