package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridform/gridform/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	uu := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"zorg":    slog.LevelInfo,
	}

	for k, e := range uu {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, e, logging.ParseLevel(k))
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := logging.WithTable(logging.New(&buf, "warn"), "people", "rows", 3)

	l.Info("dropped")
	l.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "msg=kept")
	assert.Contains(t, out, "table=people")
	assert.Contains(t, out, "rows=3")
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "state", "gridform.log")
	c, err := logging.Setup("debug", path)
	require.NoError(t, err)

	slog.Debug("hello", "n", 1)
	require.NoError(t, c.Close())

	bb, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bb), "msg=hello n=1")
}
