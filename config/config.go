// Package config loads gelsim's optional TOML configuration file.
//
// Configuration is entirely optional: every field has a default and a missing
// file is not an error. The file is looked up at
// $XDG_CONFIG_HOME/gelsim/config.toml (falling back to ~/.config), or at an
// explicit path given with --config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// appName is used for the config and cache directory names.
const appName = "gelsim"

// Cache backend names accepted in [cache].
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the root of the TOML file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig controls the default frame dimensions.
type LayoutConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// RenderConfig controls the default output settings.
type RenderConfig struct {
	Style    string   `toml:"style"`
	Formats  []string `toml:"formats"`
	PNGScale float64  `toml:"png_scale"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file backend's directory (default: XDG cache dir).
	Dir string `toml:"dir"`
	// TTL bounds how long cached layouts and artifacts are kept.
	TTL duration `toml:"ttl"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// duration lets TOML carry values like "24h" or "90m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Width:  900,
			Height: 700,
		},
		Render: RenderConfig{
			Style:    "classic",
			Formats:  []string{"svg"},
			PNGScale: 2.0,
		},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			TTL:     duration{7 * 24 * time.Hour},
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
	}
}

// Load reads the configuration at path. An empty path means the default
// location; a missing file at the default location yields Default().
// An explicitly named file that does not exist is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultPath()
		if err != nil {
			return Default(), nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return Config{}, fmt.Errorf("config file %s does not exist", path)
		}
		return Default(), nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend %q (must be 'file', 'redis', or 'none')", c.Cache.Backend)
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("layout dimensions must be positive")
	}
	return nil
}

// defaultPath returns the XDG config file location.
func defaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the directory for the file cache backend, honoring the
// configured override and the XDG cache home.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
