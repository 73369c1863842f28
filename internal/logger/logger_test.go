package logger

import (
	"testing"

	"github.com/smallbiznis/netlicensing/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewUsesConfiguredLevel(t *testing.T) {
	log, level, err := New(Config{Level: "warn", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.Equal(t, zapcore.WarnLevel, level.Level())
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestSetLevelChangesRunningLogger(t *testing.T) {
	log, level, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, SetLevel(level, " DEBUG "))
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, SetLevel(level, "verbose"))
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestNewFromConfigReplacesGlobals(t *testing.T) {
	previous := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	log, level, err := NewFromConfig(config.Config{
		AppName:     "nlic",
		Environment: "test",
		Log:         config.LogConfig{Level: "error", Format: "json"},
	})
	require.NoError(t, err)
	assert.Same(t, log, zap.L())
	assert.Equal(t, zapcore.ErrorLevel, level.Level())
}
