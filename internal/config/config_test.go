package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/recipebox/internal/logger"
)

// inTempDir keeps a developer's .env out of the test
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "recipebox", cfg.DB.DBName)
	assert.Equal(t, 15*time.Second, cfg.Import.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Import.ReimportDelay)
	assert.Equal(t, time.Hour, cfg.Import.PageCacheTTL)
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	inTempDir(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("DB_NAME", "recipes_test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("IMPORT_REIMPORT_DELAY", "500ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "recipes_test", cfg.DB.DBName)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 500*time.Millisecond, cfg.Import.ReimportDelay)
	assert.Equal(t, logger.LevelDebug, cfg.Logger.Level)
	assert.Contains(t, cfg.DB.DSN(), "dbname=recipes_test")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	inTempDir(t)
	t.Setenv("IMPORT_TIMEOUT", "0s")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMPORT_TIMEOUT")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
