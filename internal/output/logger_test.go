package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

func decodeEntry(t *testing.T, data string) LogEntry {
	t.Helper()
	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(data), &entry), "output: %s", data)
	return entry
}

func TestLogger_Basic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().SetOutputs(&buf)

	logger.Info("Test message")

	assert.Contains(t, buf.String(), "Test message")
	assert.Contains(t, buf.String(), "[INFO]")
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		logFunc  func(*Logger)
		expected string
	}{
		{func(l *Logger) { l.Trace("trace") }, "TRACE"},
		{func(l *Logger) { l.Debug("debug") }, "DEBUG"},
		{func(l *Logger) { l.Info("info") }, "INFO"},
		{func(l *Logger) { l.Warn("warn") }, "WARN"},
		{func(l *Logger) { l.Error("error") }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger().SetLevel(LogLevelTrace).SetOutputs(&buf)

			tt.logFunc(logger)

			assert.Contains(t, buf.String(), "["+tt.expected+"]")
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().SetLevel(LogLevelWarn).SetOutputs(&buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
	assert.True(t, logger.Enabled(LogLevelError))
	assert.False(t, logger.Enabled(LogLevelInfo))
}

func TestLogger_DiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()

	assert.False(t, logger.Enabled(LogLevelFatal))
	logger.Error("dropped")
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().SetOutputs(&buf)

	logger.WithFields(map[string]any{"key2": 42, "key1": "value1"}).Info("message")

	assert.Contains(t, buf.String(), "[key1=value1 key2=42]")
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger().SetOutputs(&buf)

	_ = parent.WithField("page", 3)
	parent.Info("parent message")

	assert.NotContains(t, buf.String(), "page=3")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().SetFormat(LogFormatJSON).SetOutputs(&buf)

	logger.Info("test message", map[string]any{"page": 2})

	entry := decodeEntry(t, buf.String())
	assert.Equal(t, "test message", entry.Message)
	assert.Equal(t, LogLevelInfo, entry.Level)
	assert.EqualValues(t, 2, entry.Fields["page"])
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestLogger_JSONLimits(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().
		SetFormat(LogFormatJSON).
		SetOutputs(&buf).
		SetLimits(Limits{MaxStrLen: 8, MaxListLen: 3, Placeholder: "..."})

	logger.Info("a message that is long", map[string]any{
		"items": []string{"a", "b", "c", "d", "e"},
	})

	entry := decodeEntry(t, buf.String())
	assert.Equal(t, "a mes...", entry.Message)
	assert.Equal(t, []any{"a", "b", "..."}, entry.Fields["items"])
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().SetFormat(LogFormatJSON).SetOutputs(&buf)

	testErr := fmt.Errorf("test error")
	logger.WithError(testErr).Error("something failed")

	entry := decodeEntry(t, buf.String())
	assert.Equal(t, testErr.Error(), entry.Fields["error"])
	assert.Same(t, logger, logger.WithError(nil))
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().SetFormat(LogFormatJSON).SetOutputs(&buf).EnableCaller()

	logger.Info("test message")

	entry := decodeEntry(t, buf.String())
	assert.Contains(t, entry.Caller, "logger_test.go")

	buf.Reset()
	logger.DisableCaller().Info("again")
	assert.Empty(t, decodeEntry(t, buf.String()).Caller)
}

func TestLogger_FormattedMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger().SetLevel(LogLevelDebug).SetOutputs(&buf)

	logger.Infof("formatted %s %d", "message", 42)
	logger.Debugf("page %d", 3)

	assert.Contains(t, buf.String(), "formatted message 42")
	assert.Contains(t, buf.String(), "page 3")
}

func TestLogger_MultipleOutputs(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	logger := NewLogger().SetOutputs(&buf1)
	logger.AddOutput(&buf2)

	logger.Info("test message")

	assert.Equal(t, buf1.String(), buf2.String())
	assert.Contains(t, buf1.String(), "test message")
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelTrace, "TRACE"},
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelFatal, "FATAL"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("Debug")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, level)

	level, err = ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, level)

	_, err = ParseLogLevel("loud")
	assert.True(t, errors.IsType(err, errors.ValidationFailed))
}

func TestParseLogFormat(t *testing.T) {
	format, err := ParseLogFormat("json")
	require.NoError(t, err)
	assert.Equal(t, LogFormatJSON, format)

	_, err = ParseLogFormat("xml")
	assert.True(t, errors.IsType(err, errors.ValidationFailed))
}

func TestCreateFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "keymenu.log")

	logger, closer, err := CreateFileLogger(path, LogLevelDebug, LogFormatJSON, FileOptions{MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("written to file", map[string]any{"page": 1})
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entry := decodeEntry(t, strings.TrimSpace(string(data)))
	assert.Equal(t, "written to file", entry.Message)
}
