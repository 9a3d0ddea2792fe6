// SPDX-License-Identifier: MIT

package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V.
const (
	DEBUG = 1
	TRACE = 2
)

// ErrLogConfig indicates an unknown level or format.
var ErrLogConfig = errors.New("logging: invalid configuration")

// New returns a logger writing to stderr at level in format.
func New(level, format string) (logr.Logger, error) {
	cfg, err := Config(level, format)
	if err != nil {
		return logr.Discard(), err
	}
	z, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("%w: %w", ErrLogConfig, err)
	}

	return zapr.NewLogger(z), nil
}

// Config returns the zap configuration for level and format.
func Config(level, format string) (zap.Config, error) {
	lvl, err := zapLevel(level)
	if err != nil {
		return zap.Config{}, err
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "standard", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "minimal":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.CallerKey = ""
		cfg.DisableStacktrace = true
	default:
		return zap.Config{}, fmt.Errorf("%w: format %q", ErrLogConfig, format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil

	return cfg, nil
}

// zapLevel maps a level name to zap. "debug" also enables V(TRACE).
func zapLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.Level(-TRACE), nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}

	return 0, fmt.Errorf("%w: level %q", ErrLogConfig, level)
}
