package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestInitWithConfigWritesJSONWithRunID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	require.NoError(t, InitWithConfig(Config{Level: LevelDebug, OutputPath: path, Format: "json"}))

	ctx := ContextWithRunID(context.Background(), "run-42")
	WithContext(ctx).Info("reimport started", "recipes", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"reimport started"`)
	assert.Contains(t, line, `"run_id":"run-42"`)
	assert.Contains(t, line, `"recipes":3`)
}

func TestWithFieldsAddsAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.log")
	require.NoError(t, InitWithConfig(Config{Level: LevelInfo, OutputPath: path, Format: "text"}))

	WithFields("user_id", 7, "url", "https://example.com/stew").Info("Importing recipe")
	Debug("hidden below info")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "msg=\"Importing recipe\"")
	assert.Contains(t, out, "user_id=7")
	assert.Contains(t, out, "url=https://example.com/stew")
	assert.NotContains(t, out, "hidden below info")
}
