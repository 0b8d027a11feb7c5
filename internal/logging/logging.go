// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Destination names where log output goes.
type Destination string

const (
	// Console writes human-readable lines to stderr.
	Console Destination = "console"
	// JSON writes one JSON object per line to stderr.
	JSON Destination = "json"
)

// New returns a logger at the named level ("debug", "info", "warn",
// "error"). dest is Console, JSON, or a file path that receives JSON lines.
// An empty level means info and an empty dest means Console.
func New(level string, dest Destination) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	switch dest {
	case "", Console:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
	case JSON:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{string(dest)}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a level name to its zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}
