package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/graphloom/internal/config"
)

func testLoggerConfig() config.LoggerConfig {
	return config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "graphloom-test",
	}
}

func TestInitializeWritesToConsole(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(testLoggerConfig(), zapcore.AddSync(&buf))

	GetLogger().Info("hello from the test")
	require.NoError(t, GetLogger().Sync())

	out := buf.String()
	assert.Contains(t, out, "hello from the test")
	assert.Contains(t, out, "graphloom-test")
	assert.Contains(t, out, "INFO")
}

func TestInitializeRespectsLevel(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg := testLoggerConfig()
	cfg.Level = "error"

	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))

	GetLogger().Info("too quiet to matter")
	assert.NotContains(t, buf.String(), "too quiet to matter")
}

func TestInitializeOnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	Initialize(testLoggerConfig(), zapcore.AddSync(&first))
	Initialize(testLoggerConfig(), zapcore.AddSync(&second))

	GetLogger().Info("routed to the first writer")
	assert.Contains(t, first.String(), "routed to the first writer")
	assert.Empty(t, strings.TrimSpace(second.String()))
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	cfg := testLoggerConfig()
	cfg.Level = "shouting"

	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))

	GetLogger().Debug("below the fallback level")
	GetLogger().Info("at the fallback level")

	out := buf.String()
	assert.NotContains(t, out, "below the fallback level")
	assert.Contains(t, out, "at the fallback level")
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	// Must hand back a usable fallback rather than nil.
	assert.NotNil(t, GetLogger())
}
