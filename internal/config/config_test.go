package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CRMS_DATA_PATH", "CRMS_BACKEND", "CRMS_SLOT", "CRMS_THEME",
		"CRMS_COLOR", "CRMS_LOG_LEVEL", "CRMS_LOG_FILE", "CRMS_REMIND_SCHEDULE",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "json", cfg.Data.Backend)
	assert.Equal(t, "crms-cycle-data", cfg.Data.Slot)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Equal(t, "0 21 * * *", cfg.Remind.Schedule)
	assert.True(t, cfg.Watch.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Data.Backend = "sqlite"
	cfg.Data.Path = "/tmp/crms.db"
	cfg.UI.Theme = "neon"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: mono\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.UI.Theme)
	assert.Equal(t, "auto", cfg.UI.Color)
	assert.Equal(t, "json", cfg.Data.Backend)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [unterminated"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Run("data settings", func(t *testing.T) {
		t.Setenv("CRMS_DATA_PATH", "/data/cycle.db")
		t.Setenv("CRMS_BACKEND", "sqlite")
		t.Setenv("CRMS_SLOT", "other")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "/data/cycle.db", cfg.Data.Path)
		assert.Equal(t, "sqlite", cfg.Data.Backend)
		assert.Equal(t, "other", cfg.Data.Slot)
	})

	t.Run("empty values leave config alone", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("env beats file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600))
		t.Setenv("CRMS_LOG_LEVEL", "debug")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "backend", mutate: func(c *Config) { c.Data.Backend = "redis" }},
		{name: "empty path", mutate: func(c *Config) { c.Data.Path = " " }},
		{name: "theme", mutate: func(c *Config) { c.UI.Theme = "rainbow" }},
		{name: "color", mutate: func(c *Config) { c.UI.Color = "sometimes" }},
		{name: "level", mutate: func(c *Config) { c.Logging.Level = "trace" }},
		{name: "debounce", mutate: func(c *Config) { c.Watch.Debounce = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	mem := DefaultConfig()
	mem.Data.Backend = "memory"
	mem.Data.Path = ""
	assert.NoError(t, mem.Validate())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".crms", "x.json"), ExpandHome("~/.crms/x.json"))
	assert.Equal(t, "/abs/x.json", ExpandHome("/abs/x.json"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestWatchDebounce(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 250*time.Millisecond, cfg.GetWatchDebounce())
	cfg.Watch.Debounce = "1s"
	assert.Equal(t, time.Second, cfg.GetWatchDebounce())
	cfg.Watch.Debounce = "bogus"
	assert.Equal(t, 250*time.Millisecond, cfg.GetWatchDebounce())
}
