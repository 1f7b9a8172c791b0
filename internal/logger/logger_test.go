package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		env           string
		expectedLevel zapcore.Level
		expectedError bool
	}{
		{name: "development debug", level: "debug", env: "development", expectedLevel: zapcore.DebugLevel},
		{name: "production info", level: "info", env: "production", expectedLevel: zapcore.InfoLevel},
		{name: "production warn", level: "warn", env: "production", expectedLevel: zapcore.WarnLevel},
		{name: "invalid level", level: "loud", env: "production", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.env)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, logger)
			assert.True(t, logger.Core().Enabled(tt.expectedLevel))
			assert.False(t, logger.Core().Enabled(tt.expectedLevel-1))
		})
	}
}
