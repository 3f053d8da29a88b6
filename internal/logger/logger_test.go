package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig(LogLevelInfo, LogFormatJSON, "test-service", "test", EnvironmentTest, false)
	InitLoggerWithWriter(config, &buf)

	Info("hello", "key", "value")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "test-service", entry[AttrKeyService])
}

func TestInitLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig(LogLevelWarn, LogFormatText, "test-service", "test", EnvironmentTest, false)
	InitLoggerWithWriter(config, &buf)

	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be filtered")
	assert.Contains(t, out, "should appear")
}

func TestFromContextIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	config := NewConfig(LogLevelInfo, LogFormatText, "test-service", "test", EnvironmentTest, false)
	InitLoggerWithWriter(config, &buf)

	id := GenerateRequestID()
	ctx := WithRequestID(context.Background(), id)
	FromContext(ctx).Info("traced")

	assert.Contains(t, buf.String(), id)
}

func TestRequestIDFromContextMissing(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestConfigLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelWarning, "WARN"},
		{LogLevelError, "ERROR"},
		{"bogus", "INFO"},
	}

	for _, tt := range tests {
		cfg := Config{Level: tt.level}
		assert.True(t, strings.EqualFold(tt.expected, cfg.LogLevel().String()), "level %s", tt.level)
	}
}
