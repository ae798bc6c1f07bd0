package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
)

// NewStdoutExporter returns an exporter printing metrics as JSON.
func NewStdoutExporter(opts ...stdoutmetric.Option) (metricsdk.Exporter, error) {
	return stdoutmetric.New(opts...)
}

// NewOTLPExporter returns an exporter pushing metrics to an OTLP collector
// over gRPC.
func NewOTLPExporter(ctx context.Context, opts ...otlpmetricgrpc.Option) (metricsdk.Exporter, error) {
	return otlpmetricgrpc.New(ctx, opts...)
}
