package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("egg cap reached", "live", 64)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "egg cap reached")
	assert.Contains(t, buf.String(), "live=64")
}

func TestNewUnknownLevel(t *testing.T) {
	logger := New(&bytes.Buffer{}, "chatty")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	logger, closeFn, err := OpenFile(path, "debug")
	require.NoError(t, err)

	logger.Debug("egg spawned")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "egg spawned")

	discard, closeFn, err := OpenFile("", "debug")
	require.NoError(t, err)
	assert.NotNil(t, discard)
	assert.NoError(t, closeFn())
}
