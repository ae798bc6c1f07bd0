package log

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/kakao/chanbench/pkg/util/fputil"
)

const (
	defaultLogLevel = zapcore.InfoLevel

	DefaultMaxSizeMB  = 100
	DefaultMaxAgeDays = 0 // retain all
	DefaultMaxBackups = 0 // retain all

	logDirMode = os.FileMode(0755)
)

type Level = zapcore.Level

type config struct {
	disableLogToStderr bool

	humanFriendly bool
	level         Level

	// log rotate
	path       string
	maxSizeMB  int
	maxAgeDays int
	maxBackups int
	compress   bool
	localTime  bool
}

func newConfig(opts []Option) (cfg config, err error) {
	cfg = config{
		level:      defaultLogLevel,
		maxSizeMB:  DefaultMaxSizeMB,
		maxAgeDays: DefaultMaxAgeDays,
		maxBackups: DefaultMaxBackups,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	err = cfg.validate()
	return cfg, err
}

func (c config) validate() error {
	if c.disableLogToStderr && len(c.path) == 0 {
		return errors.New("logger: no output")
	}
	if len(c.path) > 0 {
		if c.path[len(c.path)-1] == '/' {
			return errors.New("logger: invalid file path")
		}
		if err := os.MkdirAll(filepath.Dir(c.path), logDirMode); err != nil {
			return err
		}
		if err := fputil.IsWritableDir(filepath.Dir(c.path)); err != nil {
			return err
		}
	}
	return nil
}

type Option func(*config)

func WithoutLogToStderr() Option {
	return func(c *config) {
		c.disableLogToStderr = true
	}
}

// WithPath makes the logger write to the file at path. The file is rotated
// by size.
func WithPath(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

func WithMaxSizeMB(maxSizeMB int) Option {
	return func(c *config) {
		c.maxSizeMB = maxSizeMB
	}
}

func WithAgeDays(maxAgeDays int) Option {
	return func(c *config) {
		c.maxAgeDays = maxAgeDays
	}
}

func WithMaxBackups(maxBackups int) Option {
	return func(c *config) {
		c.maxBackups = maxBackups
	}
}

func WithLocalTime() Option {
	return func(c *config) {
		c.localTime = true
	}
}

func WithCompression() Option {
	return func(c *config) {
		c.compress = true
	}
}

// WithHumanFriendly selects the console encoder instead of JSON.
func WithHumanFriendly() Option {
	return func(c *config) {
		c.humanFriendly = true
	}
}

func WithLogLevel(level Level) Option {
	return func(c *config) {
		c.level = level
	}
}
