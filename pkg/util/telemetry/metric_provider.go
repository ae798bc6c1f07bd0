package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
)

// StopMeterProvider is the type for stop function of meter provider.
// It flushes and stops both meter provider and its reader.
type StopMeterProvider func(context.Context) error

// NewMeterProvider creates a new meter provider and its stop function.
func NewMeterProvider(opts ...MeterProviderOption) (metric.MeterProvider, StopMeterProvider, error) {
	cfg := newMeterProviderConfig(opts)

	stop := func(context.Context) error { return nil }

	reader := cfg.reader
	if reader == nil {
		if cfg.exporter == nil {
			return noopmetric.NewMeterProvider(), stop, nil
		}
		reader = metricsdk.NewPeriodicReader(cfg.exporter)
	}

	mp := metricsdk.NewMeterProvider(
		metricsdk.WithResource(cfg.resource),
		metricsdk.WithReader(reader),
	)

	stop = func(ctx context.Context) error {
		return errors.Join(mp.ForceFlush(ctx), mp.Shutdown(ctx))
	}

	if cfg.hostInstrumentation {
		if err := host.Start(host.WithMeterProvider(mp)); err != nil {
			return nil, stop, err
		}
	}

	if cfg.runtimeInstrumentation {
		if err := runtime.Start(append(cfg.runtimeInstrumentationOpts, runtime.WithMeterProvider(mp))...); err != nil {
			return nil, stop, err
		}
	}

	return mp, stop, nil
}

func SetGlobalMeterProvider(mp metric.MeterProvider) {
	otel.SetMeterProvider(mp)
}

func GetGlobalMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}
