package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestWriterLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, slog.LevelInfo)
	l.Debug("hidden")
	l.With("component", "engine").Info("tick committed", slog.Int("tick", 3))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "tick committed", line["msg"])
	assert.Equal(t, "engine", line["component"])
	assert.EqualValues(t, 3, line["tick"])
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("y", "n", 1)
		l.Warn("z")
		l.Error("w", "k", "v")
		assert.Nil(t, l.With("k", "v"))
	})
}

func TestNewWithDirectory(t *testing.T) {
	dir := t.TempDir()
	l := New("debug", dir)
	assert.Equal(t, filepath.Join(dir, "airport_traffic.slog"), l.LogFile)
	assert.True(t, l.Logger.Enabled(context.Background(), slog.LevelDebug))
}
