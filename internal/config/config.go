// Package config loads the goal-tracker configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the user-editable configuration. The remote endpoint and its
// access token are injected from here into the sync transport at
// construction time; nothing in the sync path reads globals.
type Config struct {
	// Endpoint is the URL of the spreadsheet-backed web endpoint. Empty
	// means sync is disabled and only local state is kept.
	Endpoint string `toml:"endpoint"`
	// Token is an optional shared access token passed through in push
	// bodies.
	Token string `toml:"token"`
	// DebounceMS is the inactivity window, in milliseconds, before a
	// debounced push fires.
	DebounceMS int `toml:"debounce_ms"`
	// StatePath is the persisted key/value state file.
	StatePath string `toml:"state_path"`
	// LogPath is the daemon's rotating log file.
	LogPath string `toml:"log_path"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".goal-tracker")
	return Config{
		DebounceMS: 800,
		StatePath:  filepath.Join(dir, "state.json"),
		LogPath:    filepath.Join(dir, "daemon.log"),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".goal-tracker", "config.toml")
}

// Load reads a config file, layering it over the defaults. A missing file is
// not an error; it simply yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = 800
	}
	return cfg, nil
}

// DebounceWindow returns the configured debounce as a duration.
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
