package benchmark

import (
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/kakao/chanbench/pkg/channel"
	"github.com/kakao/chanbench/pkg/channel/backends"
)

// DefaultScenarioTimeout disables the scenario timeout.
const DefaultScenarioTimeout = time.Duration(0)

// SampleSink receives the samples of every completed scenario. It is called
// after the scenario has finished, never while it is measured.
type SampleSink func(label string, samples []LatencySample)

type config struct {
	scenarios       []Scenario
	registry        *channel.Registry
	logger          *zap.Logger
	meterProvider   metric.MeterProvider
	sampleSink      SampleSink
	scenarioTimeout time.Duration
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		logger:          zap.NewNop(),
		meterProvider:   noop.NewMeterProvider(),
		scenarioTimeout: DefaultScenarioTimeout,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = backends.Registry()
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (cfg *config) validate() error {
	if len(cfg.scenarios) == 0 {
		return errors.New("no scenarios")
	}
	for idx, sc := range cfg.scenarios {
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("scenario %d: %w", idx, err)
		}
		if !cfg.registry.Has(sc.Kind) {
			return fmt.Errorf("scenario %d: %w: %s", idx, channel.ErrUnknownKind, sc.Kind)
		}
	}
	if cfg.logger == nil {
		return errors.New("nil logger")
	}
	if cfg.meterProvider == nil {
		return errors.New("nil meter provider")
	}
	if cfg.scenarioTimeout < 0 {
		return fmt.Errorf("negative scenario timeout %s", cfg.scenarioTimeout)
	}
	return nil
}

type Option interface {
	apply(*config)
}

type funcOption struct {
	f func(*config)
}

func newFuncOption(f func(*config)) *funcOption {
	return &funcOption{f: f}
}

func (fo *funcOption) apply(cfg *config) {
	fo.f(cfg)
}

// WithScenarios appends scenarios to run in the given order.
func WithScenarios(scenarios ...Scenario) Option {
	return newFuncOption(func(cfg *config) {
		cfg.scenarios = append(cfg.scenarios, scenarios...)
	})
}

// WithRegistry sets the registry backends are created from. It defaults to
// the registry of every shipped backend.
func WithRegistry(registry *channel.Registry) Option {
	return newFuncOption(func(cfg *config) {
		cfg.registry = registry
	})
}

func WithLogger(logger *zap.Logger) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logger = logger
	})
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return newFuncOption(func(cfg *config) {
		cfg.meterProvider = mp
	})
}

func WithSampleSink(sink SampleSink) Option {
	return newFuncOption(func(cfg *config) {
		cfg.sampleSink = sink
	})
}

// WithScenarioTimeout fails a scenario that is still running after timeout.
// Its goroutines are abandoned and may still be running while the following
// scenarios are measured, which can skew their latencies. Zero disables the
// timeout.
func WithScenarioTimeout(timeout time.Duration) Option {
	return newFuncOption(func(cfg *config) {
		cfg.scenarioTimeout = timeout
	})
}
