package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all crms configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Remind  RemindConfig  `yaml:"remind"`
	Watch   WatchConfig   `yaml:"watch"`
}

// DataConfig selects where the observation slot lives.
type DataConfig struct {
	Backend string `yaml:"backend"` // json, sqlite, memory
	Path    string `yaml:"path"`
	Slot    string `yaml:"slot"` // row name in the sqlite backend
}

type UIConfig struct {
	Theme string `yaml:"theme"` // classic, neon, mono
	Color string `yaml:"color"` // auto, always, never
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

type RemindConfig struct {
	Schedule string `yaml:"schedule"` // standard 5-field cron spec
}

type WatchConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Debounce string `yaml:"debounce"`
}

const (
	appDir          = ".crms"
	defaultDataFile = "crms-cycle-data.json"
	defaultSlot     = "crms-cycle-data"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Backend: "json",
			Path:    filepath.Join("~", appDir, defaultDataFile),
			Slot:    defaultSlot,
		},
		UI: UIConfig{
			Theme: "classic",
			Color: "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Remind: RemindConfig{
			Schedule: "0 21 * * *",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: "250ms",
		},
	}
}

// DefaultPath is ~/.crms/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(appDir, "config.yaml")
	}
	return filepath.Join(home, appDir, "config.yaml")
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CRMS_DATA_PATH"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("CRMS_BACKEND"); v != "" {
		c.Data.Backend = v
	}
	if v := os.Getenv("CRMS_SLOT"); v != "" {
		c.Data.Slot = v
	}
	if v := os.Getenv("CRMS_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("CRMS_COLOR"); v != "" {
		c.UI.Color = v
	}
	if v := os.Getenv("CRMS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CRMS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("CRMS_REMIND_SCHEDULE"); v != "" {
		c.Remind.Schedule = v
	}
}

// Validate checks enumerated fields and durations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Data.Backend) {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("data.backend: unknown backend %q", c.Data.Backend)
	}
	if c.Data.Backend != "memory" && strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("data.path is required")
	}
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	switch strings.ToLower(c.UI.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: want auto, always or never, got %q", c.UI.Color)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	return nil
}

// DataPath is Data.Path with a leading ~ expanded.
func (c *Config) DataPath() string { return ExpandHome(c.Data.Path) }

// LogFile is Logging.File with a leading ~ expanded.
func (c *Config) LogFile() string { return ExpandHome(c.Logging.File) }

// GetWatchDebounce falls back to 250ms when unset or invalid.
func (c *Config) GetWatchDebounce() time.Duration {
	if d, err := time.ParseDuration(c.Watch.Debounce); err == nil && d > 0 {
		return d
	}
	return 250 * time.Millisecond
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
