package benchmark

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
)

const meterName = "github.com/kakao/chanbench/internal/benchmark"

const (
	attrScenario = attribute.Key("scenario")
	attrKind     = attribute.Key("kind")
	attrState    = attribute.Key("state")
)

type metrics struct {
	latency   metric.Int64Histogram
	scenarios metric.Int64Counter
	samples   metric.Int64Counter
}

func newMetrics(meter metric.Meter) (m *metrics, err error) {
	var errs error
	m = &metrics{}

	m.latency, err = meter.Int64Histogram(
		"chanbench.latency",
		metric.WithDescription("Delivery latency of messages of completed scenarios."),
		metric.WithUnit("ns"),
	)
	errs = multierr.Append(errs, err)

	m.scenarios, err = meter.Int64Counter(
		"chanbench.scenarios",
		metric.WithDescription("Number of finished scenarios by state."),
		metric.WithUnit("{scenario}"),
	)
	errs = multierr.Append(errs, err)

	m.samples, err = meter.Int64Counter(
		"chanbench.samples",
		metric.WithDescription("Number of latency samples of completed scenarios."),
		metric.WithUnit("{sample}"),
	)
	errs = multierr.Append(errs, err)

	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// record is called once the scenario has finished.
func (m *metrics) record(res ScenarioResult) {
	ctx := context.Background()

	m.scenarios.Add(ctx, 1, metric.WithAttributes(
		attrKind.String(res.Scenario.Kind),
		attrState.String(res.State.String()),
	))
	if !res.Completed() {
		return
	}

	m.samples.Add(ctx, int64(len(res.Samples)), metric.WithAttributes(
		attrKind.String(res.Scenario.Kind),
	))
	latencyAttrs := metric.WithAttributeSet(attribute.NewSet(
		attrScenario.String(res.Label),
		attrKind.String(res.Scenario.Kind),
	))
	for _, sample := range res.Samples {
		m.latency.Record(ctx, sample.Duration.Nanoseconds(), latencyAttrs)
	}
}
