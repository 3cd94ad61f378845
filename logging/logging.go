// Package logging builds the zap loggers used by the command line tools.
//
// Library packages never log through a global; they accept a *zap.Logger
// option and default to zap.NewNop().
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jmgilman/go/vfs/errors"
)

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path
}

// DefaultConfig logs warnings and above as console text on stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		Format:     "console",
		OutputPath: "stderr",
	}
}

// ParseLevel converts a level name to a zapcore.Level. An empty name is
// info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return level, errors.WithContext(
			errors.Wrap(err, errors.CodeInvalidInput, "invalid log level"),
			"level", name,
		)
	}
	return level, nil
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var config zap.Config
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, errors.WithContext(
			errors.New(errors.CodeInvalidInput, "invalid log format"),
			"format", cfg.Format,
		)
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.DisableStacktrace = true
	if cfg.OutputPath != "" {
		config.OutputPaths = []string{cfg.OutputPath}
	}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeFailure, "failed to build logger")
	}
	return logger, nil
}
