package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/fintrack/internal/model"
)

// Config holds all fintrack configuration.
type Config struct {
	API        APIConfig        `toml:"api" json:"api" yaml:"api"`
	General    GeneralConfig    `toml:"general" json:"general" yaml:"general"`
	TUI        TUIConfig        `toml:"tui" json:"tui" yaml:"tui"`
	Appearance AppearanceConfig `toml:"appearance" json:"appearance" yaml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon" json:"daemon" yaml:"daemon"`
	Log        LogConfig        `toml:"log" json:"log" yaml:"log"`
}

// APIConfig points at the finance tracker backend.
type APIConfig struct {
	BaseURL    string `toml:"base_url" json:"base_url" yaml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec" json:"timeout_sec" yaml:"timeout_sec"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// DefaultMonth is used when --month is not given. Empty means the
	// current calendar month.
	DefaultMonth string `toml:"default_month,omitempty" json:"default_month,omitempty" yaml:"default_month,omitempty"`
	RecentLimit  int    `toml:"recent_limit" json:"recent_limit" yaml:"recent_limit"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh" json:"auto_refresh" yaml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec" json:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" json:"theme" yaml:"theme"`
}

// DaemonConfig holds the watcher daemon settings.
type DaemonConfig struct {
	Addr        string `toml:"addr" json:"addr" yaml:"addr"`
	IntervalSec int    `toml:"interval_sec" json:"interval_sec" yaml:"interval_sec"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level" json:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:    "http://localhost:5000",
			TimeoutSec: 10,
		},
		General: GeneralConfig{
			RecentLimit: 50,
		},
		TUI: TUIConfig{
			AutoRefresh:        false,
			RefreshIntervalSec: 60,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:        "127.0.0.1:8787",
			IntervalSec: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the per-request API timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// RefreshInterval returns the TUI auto-refresh interval.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.TUI.RefreshIntervalSec) * time.Second
}

// PollInterval returns the daemon polling interval.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Daemon.IntervalSec) * time.Second
}

// Month resolves the configured default month, falling back to now.
func (c Config) Month(now time.Time) model.Month {
	if c.General.DefaultMonth != "" {
		if m, err := model.ParseMonth(c.General.DefaultMonth); err == nil {
			return m
		}
	}
	return model.MonthOf(now)
}

// Validate reports every problem in the config at once.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("api.base_url: %q is not an http(s) URL", c.API.BaseURL))
	}
	if c.API.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout_sec: must be positive, got %d", c.API.TimeoutSec))
	}
	if c.General.DefaultMonth != "" {
		if _, err := model.ParseMonth(c.General.DefaultMonth); err != nil {
			errs = append(errs, fmt.Errorf("general.default_month: %w", err))
		}
	}
	if c.General.RecentLimit <= 0 {
		errs = append(errs, fmt.Errorf("general.recent_limit: must be positive, got %d", c.General.RecentLimit))
	}
	if c.TUI.AutoRefresh && c.TUI.RefreshIntervalSec < 5 {
		errs = append(errs, fmt.Errorf("tui.refresh_interval_sec: must be at least 5, got %d", c.TUI.RefreshIntervalSec))
	}
	if c.Daemon.IntervalSec <= 0 {
		errs = append(errs, fmt.Errorf("daemon.interval_sec: must be positive, got %d", c.Daemon.IntervalSec))
	}
	if c.Daemon.Addr == "" {
		errs = append(errs, errors.New("daemon.addr: must not be empty"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fintrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fintrack")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadDotEnv loads a .env file from the working directory into the
// process environment. Variables already set win; a missing file is fine.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}
