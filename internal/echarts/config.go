package echarts

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

const (
	DefaultOutputPath = "echarts.js"
	DefaultFileMode   = os.FileMode(0o644)
)

type config struct {
	path     string
	fileMode os.FileMode
	logger   *zap.Logger
}

func newConfig(path string, opts []Option) (config, error) {
	cfg := config{
		path:     path,
		fileMode: DefaultFileMode,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	cfg.logger = cfg.logger.Named("echarts")
	return cfg, nil
}

func (cfg *config) validate() error {
	if len(cfg.path) == 0 {
		return errors.New("echarts: no output path")
	}
	if cfg.path[len(cfg.path)-1] == os.PathSeparator {
		return errors.New("echarts: output path is a directory")
	}
	if cfg.logger == nil {
		return errors.New("echarts: nil logger")
	}
	return nil
}

type Option func(*config)

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func WithFileMode(mode os.FileMode) Option {
	return func(cfg *config) {
		cfg.fileMode = mode
	}
}
