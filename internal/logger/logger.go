// Package logger builds the application zap logger
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a JSON production logger when "env" is "production", a console development logger otherwise.
// "level" is one of debug, info, warn, error.
func New(level, env string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = atomicLevel

	return cfg.Build()
}
