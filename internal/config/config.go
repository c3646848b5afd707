// Package config loads and saves runway's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all runway configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Storage StorageConfig `toml:"storage"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// Timezone resolves "today" for date arithmetic; the engine itself never
	// consults the clock.
	Timezone    string `toml:"timezone,omitempty"`
	Currency    string `toml:"currency"`
	DefaultDays int    `toml:"default_days"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:    "$",
			DefaultDays: 60,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runway")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDBPath returns the XDG-compliant database location.
func DefaultDBPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway", "runway.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "runway", "runway.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
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
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Location resolves the configured timezone, falling back to the system
// local zone.
func Location(cfg Config) (*time.Location, error) {
	if cfg.General.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.General.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.General.Timezone, err)
	}
	return loc, nil
}

// DBPath returns the configured database path or the default.
func DBPath(cfg Config) string {
	if cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath
	}
	return DefaultDBPath()
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
