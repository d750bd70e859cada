package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger writing to stderr.
// level overrides fallback when set; it accepts zap level names
// ("debug", "info", "warn", "error").
func New(level string, fallback zapcore.Level) (*zap.Logger, error) {
	lvl, err := ParseLevel(level, fallback)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// ParseLevel converts a level name to a zapcore.Level.
// An empty name yields fallback.
func ParseLevel(level string, fallback zapcore.Level) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return fallback, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fallback, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
