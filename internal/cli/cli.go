package cli

import (
	"github.com/guiyumin/vlink/internal/core/config"
	"github.com/guiyumin/vlink/internal/core/logging"
	"github.com/guiyumin/vlink/internal/core/pipeline"
	"github.com/guiyumin/vlink/internal/core/resolver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger is quiet for interactive use unless --verbose is set
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if verbose {
		return logging.New("debug", true)
	}
	level := "warn"
	if logging.ParseLevel(cfg.Log.Level) > zapcore.WarnLevel {
		level = cfg.Log.Level
	}
	return logging.New(level, true)
}

// reportedError has already been shown to the user
type reportedError struct {
	error
}

// newPipeline wires the upstream client and pipeline from config
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, *zap.Logger, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	client := resolver.NewFromConfig(cfg.Upstream, logger)
	return pipeline.New(client, logger), logger, nil
}
