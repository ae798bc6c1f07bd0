package flags

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/kakao/chanbench/pkg/util/log"
)

const (
	CategoryLogger = "Logger:"

	DefaultLogFileMaxBackups    = 100
	DefaultLogFileRetentionDays = 14
	DefaultLogFileMaxSizeMB     = 100
	DefaultLogLevel             = "INFO"
)

var (
	// LogDir is a flag specifying the directory of the logs.
	LogDir = &cli.StringFlag{
		Name:     "logdir",
		Category: CategoryLogger,
		Aliases:  []string{"log-dir"},
		EnvVars:  []string{"LOGDIR", "LOG_DIR"},
		Usage:    "Directory for the log files.",
	}
	// LogToStderr is a flag that decides whether the logs are printed to
	// the stderr. Logs always go to the stderr if no log directory is set.
	LogToStderr = &cli.BoolFlag{
		Name:     "logtostderr",
		Category: CategoryLogger,
		Aliases:  []string{"log-to-stderr"},
		EnvVars:  []string{"LOGTOSTDERR"},
		Value:    true,
		Usage:    "Print the logs to the stderr.",
	}
	LogFileMaxBackups = &cli.IntFlag{
		Name:     "logfile-max-backups",
		Category: CategoryLogger,
		EnvVars:  []string{"LOGFILE_MAX_BACKUPS"},
		Value:    DefaultLogFileMaxBackups,
		Usage:    "Maximum number of backup log files. Retain all backup files if zero.",
		Action:   nonNegative("logfile-max-backups"),
	}
	LogFileRetentionDays = &cli.IntFlag{
		Name:     "logfile-retention-days",
		Category: CategoryLogger,
		EnvVars:  []string{"LOGFILE_RETENTION_DAYS"},
		Value:    DefaultLogFileRetentionDays,
		Usage:    "Age of backup log files. Unlimited age if zero, that is, retain all.",
		Action:   nonNegative("logfile-retention-days"),
	}
	LogFileMaxSizeMB = &cli.IntFlag{
		Name:     "logfile-max-size-mb",
		Category: CategoryLogger,
		EnvVars:  []string{"LOGFILE_MAX_SIZE_MB"},
		Value:    DefaultLogFileMaxSizeMB,
		Usage:    "Maximum file size for each log file.",
		Action: func(_ *cli.Context, value int) error {
			if value <= 0 {
				return fmt.Errorf("invalid value \"%d\" for flag --logfile-max-size-mb", value)
			}
			return nil
		},
	}
	LogFileCompression = &cli.BoolFlag{
		Name:     "logfile-compression",
		Category: CategoryLogger,
		EnvVars:  []string{"LOGFILE_COMPRESSION"},
		Usage:    "Compress backup log files.",
	}
	LogHumanReadable = &cli.BoolFlag{
		Name:     "log-human-readable",
		Category: CategoryLogger,
		EnvVars:  []string{"LOG_HUMAN_READABLE"},
		Usage:    "Human-readable output.",
	}
	LogLevel = &cli.StringFlag{
		Name:     "loglevel",
		Category: CategoryLogger,
		Aliases:  []string{"log-level"},
		EnvVars:  []string{"LOGLEVEL", "LOG_LEVEL"},
		Value:    DefaultLogLevel,
		Usage:    "Log levels, either debug, info, warn, or error case-insensitively.",
		Action: func(_ *cli.Context, value string) error {
			_, err := zapcore.ParseLevel(strings.ToLower(value))
			return err
		},
	}
)

// LoggerFlags returns every flag ParseLoggerFlags reads.
func LoggerFlags() []cli.Flag {
	return []cli.Flag{
		LogDir,
		LogToStderr,
		LogFileMaxBackups,
		LogFileRetentionDays,
		LogFileMaxSizeMB,
		LogFileCompression,
		LogHumanReadable,
		LogLevel,
	}
}

// ParseLoggerFlags converts the logger flags into log options. The log file,
// if any, is named logFileName under the log directory.
func ParseLoggerFlags(c *cli.Context, logFileName string) (opts []log.Option, err error) {
	opts = []log.Option{
		log.WithMaxBackups(c.Int(LogFileMaxBackups.Name)),
		log.WithAgeDays(c.Int(LogFileRetentionDays.Name)),
		log.WithMaxSizeMB(c.Int(LogFileMaxSizeMB.Name)),
		log.WithLocalTime(),
	}

	logDir := c.String(LogDir.Name)
	if len(logDir) != 0 {
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, log.WithPath(filepath.Join(logDir, logFileName)))
		if !c.Bool(LogToStderr.Name) {
			opts = append(opts, log.WithoutLogToStderr())
		}
	}

	if c.Bool(LogFileCompression.Name) {
		opts = append(opts, log.WithCompression())
	}

	if c.Bool(LogHumanReadable.Name) {
		opts = append(opts, log.WithHumanFriendly())
	}

	level, err := zapcore.ParseLevel(strings.ToLower(c.String(LogLevel.Name)))
	if err != nil {
		return nil, err
	}
	opts = append(opts, log.WithLogLevel(level))

	return opts, nil
}

func nonNegative(name string) func(*cli.Context, int) error {
	return func(_ *cli.Context, value int) error {
		if value < 0 {
			return fmt.Errorf("invalid value \"%d\" for flag --%s", value, name)
		}
		return nil
	}
}
