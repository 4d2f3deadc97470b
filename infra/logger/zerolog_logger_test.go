package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerFields(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	require.NoError(t, Setup("debug"))

	var buf bytes.Buffer
	l := NewWithWriter("yard", &buf)
	l.Debugw("dock saved", map[string]any{"dock_id": "dock_3"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "yard", entry["component"])
	assert.Equal(t, "dock_3", entry["dock_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Setup("chatty"))
	assert.NoError(t, Setup(""))
}

func TestSetOutputRedirectsNewLoggers(t *testing.T) {
	t.Setenv("APP_ENV", "")
	defer SetOutput(os.Stdout)

	path := filepath.Join(t.TempDir(), "board.log")
	w := FileOutput(path, 1, 1)
	defer func() { _ = w.Close() }()
	SetOutput(w)

	New("board").Errorf("timer on %s", "dock_4")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"board"`)
	assert.Contains(t, string(data), "timer on dock_4")
}
