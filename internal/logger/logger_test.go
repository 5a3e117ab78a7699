package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		expectedError bool
		enabled       []zapcore.Level
		disabled      []zapcore.Level
	}{
		{
			name:    "debug",
			level:   "debug",
			enabled: []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel},
		},
		{
			name:     "warn",
			level:    "warn",
			enabled:  []zapcore.Level{zapcore.WarnLevel, zapcore.ErrorLevel},
			disabled: []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel},
		},
		{
			name:          "invalid",
			level:         "loud",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			for _, lvl := range tt.enabled {
				assert.True(t, Logger.Core().Enabled(lvl), lvl.String())
			}
			for _, lvl := range tt.disabled {
				assert.False(t, Logger.Core().Enabled(lvl), lvl.String())
			}
		})
	}
}
