package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mini-maxit/acick/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNamedLogger_WritesToLogDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ACICK_LOG_DIR", dir)
	logger.SetDebug(false)
	t.Cleanup(func() { logger.SetDebug(false) })

	log := logger.NewNamedLogger("session")
	log.Infof("GET %s", "https://atcoder.jp/login")
	log.Debugf("hidden at info level")
	logger.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "acick.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "session")
	assert.Contains(t, string(content), "GET https://atcoder.jp/login")
	assert.False(t, strings.Contains(string(content), "hidden at info level"))
}

func TestSetDebug_EnablesDebugEntries(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ACICK_LOG_DIR", dir)
	logger.SetDebug(true)
	t.Cleanup(func() { logger.SetDebug(false) })

	log := logger.NewNamedLogger("judge")
	log.Debugf("running sample %s", "1")
	logger.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "acick.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "DEBUG")
	assert.Contains(t, string(content), "running sample 1")
}
