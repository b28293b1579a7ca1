// Package logging builds the structured zap loggers used by services.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON production logger at the given level. Debug forces the
// debug level regardless of level.
func New(level string, debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if debug {
		parsed = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(parsed)
	// stdout is reserved for command output and the MCP stdio transport.
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a level name to a zap level. Blank means info.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var parsed zapcore.Level
	if err := parsed.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return parsed, nil
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
