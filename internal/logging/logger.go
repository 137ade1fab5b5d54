// Package logging builds the zap logger shared by the CLI and library packages.
package logging

import (
	"fmt"
	"strings"

	"github.com/ppiankov/reclasifica/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger writing to stderr. verbose forces debug
// level regardless of cfg.Level.
func New(cfg model.LogConfig, verbose bool) (*zap.Logger, error) {
	config, err := Config(cfg, verbose)
	if err != nil {
		return nil, err
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Config returns the zap configuration New would build from
func Config(cfg model.LogConfig, verbose bool) (zap.Config, error) {
	config := zap.NewProductionConfig()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	atomic, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	config.Level = atomic
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
	default:
		return zap.Config{}, fmt.Errorf("invalid log format %q (supported: console, json)", cfg.Format)
	}

	config.DisableStacktrace = !verbose
	return config, nil
}
