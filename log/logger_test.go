package log

import (
	"bytes"
	"testing"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Contains(t, LogLevel(42).String(), "UNKNOWN")
}

func TestDefaultLoggerFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown %d", 1)
	logger.Error("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 1")
	assert.Contains(t, out, "[ERROR] shown 2")
}

func TestNoOpLogger(t *testing.T) {
	var logger Logger = &NoOpLogger{}
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
}

func TestPackageLevelLogger(t *testing.T) {
	orig := GetDefaultLogger()
	defer SetDefaultLogger(orig)

	var buf bytes.Buffer
	SetDefaultLogger(NewCustomLogger(&buf, LogLevelInfo))

	Info("package level %s", "works")
	assert.Contains(t, buf.String(), "package level works")
}

func TestNewGologLogger(t *testing.T) {
	glogger := golog.New()
	logger := NewGologLogger(glogger)

	assert.NotNil(t, logger)
	assert.Equal(t, LogLevelInfo, logger.GetLevel())
}

func TestGologLoggerLevelControl(t *testing.T) {
	logger := NewGologLogger(golog.New())

	logger.SetLevel(LogLevelDebug)
	assert.Equal(t, LogLevelDebug, logger.GetLevel())

	logger.SetLevel(LogLevelNone)
	assert.Equal(t, LogLevelNone, logger.GetLevel())
}

func TestGologLoggerLogging(t *testing.T) {
	logger := NewGologLogger(golog.New())
	logger.SetLevel(LogLevelDebug)

	// Should not panic at any level or format.
	logger.Debug("debug: %s", "test")
	logger.Info("info: %d", 42)
	logger.Warn("warn: %v", []int{1, 2})
	logger.Error("error: %f", 3.14)
}
