package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry), "not a json line: %q", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Service: "adventure-server", Level: "WARN", Encoding: "xml", OutputPath: out})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	entries := readEntries(t, out)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "adventure-server", entries[0]["service"])
	assert.Contains(t, entries[0], "timestamp")
}

func TestNew_OmitsServiceWhenUnset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Config{OutputPath: out})
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Sync())

	entries := readEntries(t, out)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], "service")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Config{Level: "loud", OutputPath: out})
	require.NoError(t, err)
	require.NoError(t, log.Sync())

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	entries := readEntries(t, out)
	require.Len(t, entries, 1)
	assert.Equal(t, "Invalid log level, using info", entries[0]["msg"])
	assert.Equal(t, "loud", entries[0]["requestedLevel"])
	assert.Equal(t, "WARN", entries[0]["level"])
}
