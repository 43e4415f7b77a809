package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/calm-cli/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = t.TempDir()
	return cfg
}

func TestNew_WritesJSONFile(t *testing.T) {
	cfg := testConfig(t)

	logger, logFile, err := New(cfg, Options{})
	require.NoError(t, err)
	defer logFile.Close()
	logger.Info("mood logged")
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(config.GetLogPath(cfg))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"mood logged"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNew_VerboseAddsConsole(t *testing.T) {
	cfg := testConfig(t)
	var console bytes.Buffer

	logger, logFile, err := New(cfg, Options{Verbose: true, Console: &console})
	require.NoError(t, err)
	defer logFile.Close()
	logger.Debug("timer tick")
	_ = logger.Sync()

	assert.True(t, strings.Contains(console.String(), "timer tick"))
	data, err := os.ReadFile(config.GetLogPath(cfg))
	require.NoError(t, err)
	assert.Contains(t, string(data), "timer tick")
}

func TestNew_BadLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "loud"

	_, _, err := New(cfg, Options{})
	assert.Error(t, err)
}

func TestNew_CloseReleasesFile(t *testing.T) {
	cfg := testConfig(t)
	path := config.GetLogPath(cfg)

	logger, logFile, err := New(cfg, Options{})
	require.NoError(t, err)
	logger.Info("journal entry added")
	require.FileExists(t, path)

	require.NoError(t, logFile.Close())
	require.NoError(t, os.Remove(path))

	// An open handle would keep writing to the unlinked file.
	logger.Info("after close")
	_ = logger.Sync()
	defer logFile.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "after close")
	assert.NotContains(t, string(data), "journal entry added")
}
