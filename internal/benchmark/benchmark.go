// Package benchmark measures the delivery latency of channel backends.
//
// A Benchmark runs a list of scenarios strictly one after another. Each
// scenario creates a fresh channel, starts one goroutine per producer and a
// single collector goroutine, and waits for all of them before the next
// scenario starts.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kakao/chanbench/pkg/channel"
)

var (
	// ErrScenarioTimeout is the cause of a scenario that did not finish
	// within the scenario timeout.
	ErrScenarioTimeout = errors.New("benchmark: scenario timed out")
	// ErrSampleCount is the cause of a scenario whose collector did not
	// receive every message that was sent.
	ErrSampleCount = errors.New("benchmark: unexpected number of samples")
)

type Benchmark struct {
	config
	metrics *metrics
}

func New(opts ...Option) (*Benchmark, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(cfg.meterProvider.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("benchmark: metrics: %w", err)
	}
	return &Benchmark{
		config:  cfg,
		metrics: m,
	}, nil
}

// Run runs every scenario in order and returns one result per scenario. The
// context is checked only between scenarios: once it is done, the remaining
// scenarios are skipped and Run returns the context error.
func (bm *Benchmark) Run(ctx context.Context) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(bm.scenarios))
	for idx, sc := range bm.scenarios {
		if err := ctx.Err(); err != nil {
			for _, rest := range bm.scenarios[idx:] {
				results = append(results, ScenarioResult{
					Scenario: rest,
					Label:    rest.Label(),
					State:    StateSkipped,
					Err:      err,
				})
			}
			bm.logger.Warn("benchmark stopped", zap.Int("skipped", len(bm.scenarios)-idx), zap.Error(err))
			return results, err
		}
		results = append(results, bm.RunScenario(sc))
	}
	return results, nil
}

// RunScenario runs a single scenario. Its failure is reported in the
// result rather than returned.
func (bm *Benchmark) RunScenario(sc Scenario) ScenarioResult {
	res := ScenarioResult{
		Scenario: sc,
		Label:    sc.Label(),
		State:    StatePending,
	}
	logger := bm.logger.With(zap.String("scenario", res.Label))

	res.State = StateRunning
	logger.Debug("scenario started")
	start := time.Now()
	res.Samples, res.Err = bm.execute(sc)
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		res.State = StateFailed
		logger.Warn("scenario failed", zap.Duration("elapsed", res.Elapsed), zap.Error(res.Err))
		bm.metrics.record(res)
		return res
	}

	res.State = StateCompleted
	summary := Summarize(res.Samples)
	logger.Info("scenario completed",
		zap.Int("samples", summary.Count),
		zap.Duration("p50", summary.P50),
		zap.Duration("p99", summary.P99),
		zap.Duration("elapsed", res.Elapsed),
	)
	bm.metrics.record(res)
	if bm.sampleSink != nil {
		bm.sampleSink(res.Label, res.Samples)
	}
	return res
}

func (bm *Benchmark) execute(sc Scenario) ([]LatencySample, error) {
	if bm.scenarioTimeout <= 0 {
		return bm.measure(sc)
	}

	type outcome struct {
		samples []LatencySample
		err     error
	}
	doneC := make(chan outcome, 1)
	go func() {
		samples, err := bm.measure(sc)
		doneC <- outcome{samples: samples, err: err}
	}()

	timer := time.NewTimer(bm.scenarioTimeout)
	defer timer.Stop()
	select {
	case o := <-doneC:
		return o.samples, o.err
	case <-timer.C:
		bm.logger.Warn("scenario timed out, its goroutines keep running and may skew the following scenarios",
			zap.String("scenario", sc.Label()),
			zap.Duration("timeout", bm.scenarioTimeout),
		)
		return nil, fmt.Errorf("%w after %s", ErrScenarioTimeout, bm.scenarioTimeout)
	}
}

// measure builds the channel and runs the producers and the collector
// until all of them finish.
func (bm *Benchmark) measure(sc Scenario) ([]LatencySample, error) {
	template := NewPayloadTemplate(sc.PayloadSize)

	sender, receiver, err := bm.registry.New(sc.Kind, channel.Config{Capacity: sc.Capacity})
	if err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	wl, err := newWorkload(sender, sc, template)
	if err != nil {
		return nil, err
	}

	col := newCollector(receiver, sc.NumSamples())
	collectorErrC := make(chan error, 1)
	go func() {
		collectorErrC <- col.run()
	}()

	producersErrC := make(chan error, 1)
	go func() {
		producersErrC <- wl.run()
	}()

	// Nothing drains the channel once the collector fails, so producers of
	// a bounded backend may block forever. They are abandoned.
	select {
	case err = <-collectorErrC:
		if err != nil {
			bm.logger.Warn("collector failed, abandoning producers",
				zap.String("scenario", sc.Label()),
				zap.Error(err),
			)
			return col.samples, err
		}
		err = <-producersErrC
	case err = <-producersErrC:
		err = multierr.Append(err, <-collectorErrC)
	}
	if err != nil {
		return col.samples, err
	}

	if got, want := len(col.samples), sc.NumSamples(); got != want {
		return col.samples, fmt.Errorf("%w: got %d, want %d", ErrSampleCount, got, want)
	}
	return col.samples, nil
}
