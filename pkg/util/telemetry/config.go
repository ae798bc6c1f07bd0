package telemetry

import (
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type meterProviderConfig struct {
	resource                   *resource.Resource
	exporter                   metricsdk.Exporter
	reader                     metricsdk.Reader
	hostInstrumentation        bool
	runtimeInstrumentation     bool
	runtimeInstrumentationOpts []runtime.Option
}

func newMeterProviderConfig(opts []MeterProviderOption) meterProviderConfig {
	cfg := meterProviderConfig{
		resource: resource.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MeterProviderOption configures NewMeterProvider.
type MeterProviderOption func(*meterProviderConfig)

func WithResource(res *resource.Resource) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.resource = res
	}
}

// WithExporter sets the exporter read periodically by the meter provider.
// A nil exporter results in a no-op meter provider unless a reader is set.
func WithExporter(exporter metricsdk.Exporter) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.exporter = exporter
	}
}

// WithReader sets a reader instead of a periodic reader over an exporter.
// It is mostly used with a manual reader in tests.
func WithReader(reader metricsdk.Reader) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.reader = reader
	}
}

func WithHostInstrumentation() MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.hostInstrumentation = true
	}
}

func WithRuntimeInstrumentation(opts ...runtime.Option) MeterProviderOption {
	return func(cfg *meterProviderConfig) {
		cfg.runtimeInstrumentation = true
		cfg.runtimeInstrumentationOpts = opts
	}
}
