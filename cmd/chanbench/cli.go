package main

import (
	"github.com/urfave/cli/v2"

	"github.com/kakao/chanbench/internal/benchmark"
	"github.com/kakao/chanbench/internal/buildinfo"
	"github.com/kakao/chanbench/internal/echarts"
	"github.com/kakao/chanbench/internal/flags"
)

const categoryBenchmark = "Benchmark:"

var (
	flagScenario = &cli.StringSliceFlag{
		Name:     "scenario",
		Category: categoryBenchmark,
		Usage:    "Scenario formatted as \"producers:messages:payload:kind[:capacity]\", for instance, \"10:10:100B:unbounded\". Repeatable.",
	}
	flagScenarioFile = &cli.PathFlag{
		Name:     "scenario-file",
		Category: categoryBenchmark,
		EnvVars:  []string{"CHANBENCH_SCENARIO_FILE"},
		Usage:    "YAML file listing scenarios. Ignored if --scenario is set.",
	}
	flagOutput = &cli.PathFlag{
		Name:     "output",
		Category: categoryBenchmark,
		Aliases:  []string{"o"},
		EnvVars:  []string{"CHANBENCH_OUTPUT"},
		Value:    echarts.DefaultOutputPath,
		Usage:    "Path of the exported ECharts option document.",
	}
	flagPrintJSON = &cli.BoolFlag{
		Name:     "print-json",
		Category: categoryBenchmark,
		Usage:    "Print json output if it is set",
	}
	flagPrintSamples = &cli.BoolFlag{
		Name:     "print-samples",
		Category: categoryBenchmark,
		Usage:    "Print every latency sample of completed scenarios after they finish.",
	}
	flagScenarioTimeout = &cli.DurationFlag{
		Name:     "scenario-timeout",
		Category: categoryBenchmark,
		Value:    benchmark.DefaultScenarioTimeout,
		Usage:    "Fail a scenario still running after the timeout. Zero disables it.",
	}
	flagListBackends = &cli.BoolFlag{
		Name:     "list-backends",
		Category: categoryBenchmark,
		Usage:    "List the channel backends and exit.",
	}
)

func newApp() *cli.App {
	app := &cli.App{
		Name:    "chanbench",
		Usage:   "measure the delivery latency of channel backends",
		Version: buildinfo.Read().String(),
		Flags: []cli.Flag{
			flagScenario,
			flagScenarioFile,
			flagOutput,
			flagPrintJSON,
			flagPrintSamples,
			flagScenarioTimeout,
			flagListBackends,
		},
		Action: start,
	}
	app.Flags = append(app.Flags, flags.LoggerFlags()...)
	app.Flags = append(app.Flags, flags.TelemetryFlags()...)
	return app
}
