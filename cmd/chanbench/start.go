package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kakao/chanbench/internal/benchmark"
	"github.com/kakao/chanbench/internal/echarts"
	"github.com/kakao/chanbench/internal/flags"
	"github.com/kakao/chanbench/pkg/channel/backends"
	"github.com/kakao/chanbench/pkg/util/log"
	"github.com/kakao/chanbench/pkg/util/telemetry"
	"github.com/kakao/chanbench/pkg/util/units"
)

func start(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unexpected args: %v", c.Args().Slice())
	}

	registry := backends.Registry()
	if c.Bool(flagListBackends.Name) {
		for _, kind := range registry.Kinds() {
			fmt.Fprintln(c.App.Writer, kind)
		}
		return nil
	}

	scenarios, err := parseScenarios(c)
	if err != nil {
		return err
	}

	logOpts, err := flags.ParseLoggerFlags(c, "chanbench.log")
	if err != nil {
		return err
	}
	logger, err := log.New(logOpts...)
	if err != nil {
		return err
	}
	logger = logger.Named("chanbench")
	defer func() {
		_ = logger.Sync()
	}()

	meterProviderOpts, err := flags.ParseTelemetryFlags(c.Context, c, "chanbench", strconv.Itoa(os.Getpid()))
	if err != nil {
		return err
	}
	mp, stop, err := telemetry.NewMeterProvider(meterProviderOpts...)
	if err != nil {
		return err
	}
	telemetry.SetGlobalMeterProvider(mp)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.Duration(flags.TelemetryExporterStopTimeout.Name))
		defer cancel()
		if err := stop(ctx); err != nil {
			logger.Warn("could not stop meter provider", zap.Error(err))
		}
	}()

	exporter, err := echarts.New(c.Path(flagOutput.Name), echarts.WithLogger(logger))
	if err != nil {
		return err
	}

	opts := []benchmark.Option{
		benchmark.WithScenarios(scenarios...),
		benchmark.WithRegistry(registry),
		benchmark.WithLogger(logger.Named("benchmark")),
		benchmark.WithMeterProvider(mp),
		benchmark.WithScenarioTimeout(c.Duration(flagScenarioTimeout.Name)),
	}
	if c.Bool(flagPrintSamples.Name) {
		opts = append(opts, benchmark.WithSampleSink(printSamples(c.App.Writer)))
	}
	bm, err := benchmark.New(opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	results, runErr := bm.Run(ctx)

	var enc benchmark.ReportEncoder
	if c.Bool(flagPrintJSON.Name) {
		enc = benchmark.JSONEncoder{}
	} else {
		enc = benchmark.StringEncoder{}
	}
	fmt.Fprintln(c.App.Writer, benchmark.MustEncode(enc, benchmark.NewReports(results)))

	if err := exporter.Export(results); err != nil {
		return err
	}
	return runErr
}

// parseScenarios prefers the --scenario flags to the scenario file, and the
// file to the default scenarios.
func parseScenarios(c *cli.Context) ([]benchmark.Scenario, error) {
	if strs := c.StringSlice(flagScenario.Name); len(strs) > 0 {
		scenarios := make([]benchmark.Scenario, 0, len(strs))
		for _, str := range strs {
			sc, err := benchmark.ParseScenario(str)
			if err != nil {
				return nil, err
			}
			scenarios = append(scenarios, sc)
		}
		return scenarios, nil
	}
	if path := c.Path(flagScenarioFile.Name); len(path) > 0 {
		return benchmark.LoadScenarios(path)
	}
	return benchmark.DefaultScenarios(), nil
}

func printSamples(w io.Writer) benchmark.SampleSink {
	const precision = 4
	return func(label string, samples []benchmark.LatencySample) {
		fmt.Fprintf(w, "# %s\n", label)
		for _, sample := range samples {
			fmt.Fprintf(w, "%s %d\n", units.ToHumanDurationString(sample.Duration, precision), sample.Duration.Nanoseconds())
		}
	}
}
