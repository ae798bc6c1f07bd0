package flags

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestLoggerFlags(t *testing.T) {
	tcs := []struct {
		name string
		args []string
		ok   bool
	}{
		{
			name: "defaults",
			args: []string{"test"},
			ok:   true,
		},
		{
			name: "loglevel=debug",
			args: []string{"test", "--loglevel=debug"},
			ok:   true,
		},
		{
			name: "loglevel=WARN",
			args: []string{"test", "--loglevel=WARN"},
			ok:   true,
		},
		{
			name: "loglevel=verbose",
			args: []string{"test", "--loglevel=verbose"},
			ok:   false,
		},
		{
			name: "logfile-max-backups=-1",
			args: []string{"test", "--logfile-max-backups=-1"},
			ok:   false,
		},
		{
			name: "logfile-retention-days=-1",
			args: []string{"test", "--logfile-retention-days=-1"},
			ok:   false,
		},
		{
			name: "logfile-max-size-mb=0",
			args: []string{"test", "--logfile-max-size-mb=0"},
			ok:   false,
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			app := &cli.App{
				Name:   "test",
				Flags:  LoggerFlags(),
				Writer: io.Discard,
				Action: func(c *cli.Context) error {
					_, err := ParseLoggerFlags(c, "test.log")
					return err
				},
			}
			err := app.Run(tc.args)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseLoggerFlagsWithLogDir(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	var numOpts int
	app := &cli.App{
		Name:   "test",
		Flags:  LoggerFlags(),
		Writer: io.Discard,
		Action: func(c *cli.Context) error {
			opts, err := ParseLoggerFlags(c, "test.log")
			numOpts = len(opts)
			return err
		},
	}

	require.NoError(t, app.Run([]string{"test"}))
	withoutDir := numOpts

	require.NoError(t, app.Run([]string{"test", "--logdir=" + logDir, "--logtostderr=false"}))
	// path and stderr suppression
	require.Equal(t, withoutDir+2, numOpts)
}

func TestTelemetryFlags(t *testing.T) {
	tcs := []struct {
		name string
		args []string
		ok   bool
	}{
		{
			name: "defaults",
			args: []string{"test"},
			ok:   true,
		},
		{
			name: "exporter=stdout",
			args: []string{"test", "--telemetry-exporter=stdout"},
			ok:   true,
		},
		{
			name: "exporter=STDOUT",
			args: []string{"test", "--telemetry-exporter=STDOUT", "--telemetry-runtime"},
			ok:   true,
		},
		{
			name: "exporter=prometheus",
			args: []string{"test", "--telemetry-exporter=prometheus"},
			ok:   false,
		},
		{
			name: "exporter=otlp,endpoint=",
			args: []string{"test", "--telemetry-exporter=otlp", "--telemetry-otlp-endpoint="},
			ok:   false,
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			app := &cli.App{
				Name:      "test",
				Flags:     TelemetryFlags(),
				Writer:    io.Discard,
				ErrWriter: io.Discard,
				Action: func(c *cli.Context) error {
					_, err := ParseTelemetryFlags(context.Background(), c, "test", "0")
					return err
				},
			}
			err := app.Run(tc.args)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
