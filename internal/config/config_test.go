package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.False(t, Exists())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://budget.example.com"
	cfg.General.DefaultMonth = "March"
	cfg.Appearance.Theme = "tokyo-night"
	require.NoError(t, Save(cfg))

	assert.True(t, Exists())
	assert.Equal(t, filepath.Join(dir, "fintrack", "config.toml"), Path())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fintrack"), 0o755))
	require.NoError(t, os.WriteFile(Path(), []byte("[api]\nbase_url = \"http://10.0.0.2:5000\"\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:5000", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSec)
	assert.Equal(t, 50, cfg.General.RecentLimit)
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fintrack"), 0o755))
	require.NoError(t, os.WriteFile(Path(), []byte("[api\n"), 0o600))

	_, err := Load()
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = "localhost"
	cfg.API.TimeoutSec = 0
	cfg.General.DefaultMonth = "Smarch"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"api.base_url", "api.timeout_sec", "general.default_month", "log.level"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestMonth(t *testing.T) {
	now := time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)

	cfg := DefaultConfig()
	assert.Equal(t, model.Month("July"), cfg.Month(now))

	cfg.General.DefaultMonth = "mar"
	assert.Equal(t, model.Month("March"), cfg.Month(now))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FINTRACK_TEST_DOTENV=from-file\n"), 0o600))

	t.Setenv("FINTRACK_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("FINTRACK_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "from-file", os.Getenv("FINTRACK_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
