package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestFromZap_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := FromZap(zap.New(core)).With(zap.String("component", "sale"))

	l.Debug("hidden")
	l.Info("sale processed", zap.String("sale_id", "s-1"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "sale processed", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "sale", ctx["component"])
	assert.Equal(t, "s-1", ctx["sale_id"])
}

func TestNewZapLogger_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retail.log")
	l := NewZapLogger(&ZapLoggerConfig{
		Encoding:          "json",
		Level:             "info",
		DisableStacktrace: true,
		FilePath:          path,
	})
	l.Info("hello")
	_ = l.Sync()

	assert.FileExists(t, path)
}
