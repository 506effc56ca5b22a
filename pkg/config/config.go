// Package config loads dockyard's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/dockyard/config.toml (falling back to
// ~/.config/dockyard/config.toml). A missing file is not an error: every
// field has a default.
//
//	[surface]
//	show_grid = true
//	spacing = 1
//
//	[dock]
//	title_bar_height = 24
//
//	[cache]
//	url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/layout"
)

// AppName names the config and cache directories.
const AppName = "dockyard"

// Config is the full configuration.
type Config struct {
	Surface layout.Toggles `toml:"surface"`
	Dock    Dock           `toml:"dock"`
	Cache   Cache          `toml:"cache"`
	Server  Server         `toml:"server"`
}

// Dock configures anchor resolution.
type Dock struct {
	TitleBarHeight float64 `toml:"title_bar_height"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	// URL picks the backend by scheme: file://<dir>, redis://..., mongodb://...
	// or "none". Empty means the file cache in the user cache directory.
	URL string   `toml:"url"`
	TTL Duration `toml:"ttl"`
}

// Server configures the preview API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dock:  Dock{TitleBarHeight: 24},
		Cache: Cache{TTL: Duration{24 * time.Hour}},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/dockyard/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads path over the defaults. An empty path means [Path]. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if err := errors.ValidateSpacing(c.Surface.Spacing); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "surface.spacing")
	}
	if c.Dock.TitleBarHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dock.title_bar_height must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}
