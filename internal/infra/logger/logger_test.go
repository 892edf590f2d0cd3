package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("whatever"))
}

func TestConsoleFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelDebug)

	l.Debug("hidden %d", 1)
	l.Info("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INFO] shown 2")

	buf.Reset()
	l.SetConsole(false)
	l.Error("muted")
	assert.Empty(t, buf.String())

	l.SetConsole(true)
	l.Warn("back")
	assert.Contains(t, buf.String(), "[WARN] back")
}

func TestFileReceivesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otmget.log")

	l, err := New(path, LevelDebug, false)
	require.NoError(t, err)
	l.Debug("probe %s", "ok")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] probe ok")
}
