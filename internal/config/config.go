package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Filters   FiltersConfig   `toml:"filters"`
	Selection SelectionConfig `toml:"selection"`
	Notify    NotifyConfig    `toml:"notify"`
	History   HistoryConfig   `toml:"history"`
	Tee       TeeConfig       `toml:"tee"`
	Display   DisplayConfig   `toml:"display"`
	Log       LogConfig       `toml:"log"`
}

type FiltersConfig struct {
	// Active is nil when the key is absent, which selects the default list.
	// An explicitly empty list yields an empty menu.
	Active *[]string `toml:"active"`
}

type SelectionConfig struct {
	Color      string `toml:"color"`
	Background string `toml:"background"`
}

type NotifyConfig struct {
	Desktop   bool `toml:"desktop"`
	Clipboard bool `toml:"clipboard"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

type TeeConfig struct {
	Enabled  bool   `toml:"enabled"`
	Mode     string `toml:"mode"` // "failures", "always", "never"
	MaxFiles int    `toml:"max_files"`
	Dir      string `toml:"dir"`
}

type DisplayConfig struct {
	Color  bool   `toml:"color"`
	Locale string `toml:"locale"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Notify: NotifyConfig{
			Desktop:   true,
			Clipboard: false,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(home, ".local", "share", "exsel", "history.db"),
		},
		Tee: TeeConfig{
			Enabled:  true,
			Mode:     "failures",
			MaxFiles: 20,
			Dir:      filepath.Join(home, ".local", "share", "exsel", "tee"),
		},
		Display: DisplayConfig{
			Color: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads config from file, merging with defaults. A missing file yields
// defaults. A file that cannot be read or decoded also yields defaults; the
// returned error describes the failure and is meant for logging only.
func Load() (*Config, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Decode(data)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML over the defaults.
func Decode(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path resolves the config file location.
func Path() string {
	if p := os.Getenv("EXSEL_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "exsel", "config.toml")
}
