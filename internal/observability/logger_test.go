package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{
			name:   "json format with info level",
			level:  "info",
			format: "json",
		},
		{
			name:   "console format with debug level",
			level:  "debug",
			format: "console",
		},
		{
			name:   "warn level",
			level:  "warn",
			format: "json",
		},
		{
			name:    "invalid level",
			level:   "verbose",
			format:  "json",
			wantErr: true,
		},
		{
			name:    "invalid format",
			level:   "info",
			format:  "logfmt",
			wantErr: true,
		},
		{
			// zap parses the empty string as info
			name:   "empty level",
			level:  "",
			format: "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.level, tt.format)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestNewLoggerLevelThreshold(t *testing.T) {
	logger, err := NewLogger("warn", "json")
	require.NoError(t, err)

	assert.Nil(t, logger.Check(zapcore.InfoLevel, "suppressed"))
	assert.NotNil(t, logger.Check(zapcore.WarnLevel, "emitted"))
	assert.NotNil(t, logger.Check(zapcore.ErrorLevel, "emitted"))
}
