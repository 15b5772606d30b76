// Package config provides layered configuration for the jadwal-sholat CLI.
//
// Settings are read from built-in defaults, an optional YAML file at
// ~/.config/jadwal-sholat/config.yaml (XDG-compliant) and JADWAL_*
// environment variables, in increasing priority. CLI flags are applied on
// top by the cli package. Nothing is ever written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	configDirName  = "jadwal-sholat"
	configFileName = "config.yaml"
	envPrefix      = "JADWAL_"
)

// ValidKeys lists all config keys, in display order.
var ValidKeys = []string{
	"city", "country",
	"method",
	"base_url", "timeout",
	"log_level",
	"color",
}

// Config holds all user-configurable settings.
type Config struct {
	City     string        `koanf:"city"`
	Country  string        `koanf:"country"`
	Method   int           `koanf:"method"`
	BaseURL  string        `koanf:"base_url"`
	Timeout  time.Duration `koanf:"timeout"`
	LogLevel string        `koanf:"log_level"`
	Color    bool          `koanf:"color"`
}

// Defaults returns the built-in default settings as a koanf map.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"city":      "",
		"country":   "Indonesia",
		"method":    20,
		"base_url":  "https://api.aladhan.com/v1",
		"timeout":   "10s",
		"log_level": "warn",
		"color":     true,
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads configuration using the default file path.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads configuration with the file layer taken from path.
// A missing file is not an error; an unparsable one is.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Empty variables are skipped so they do not blank out file values.
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Method < 0 || c.Method > 23 {
		return fmt.Errorf("invalid method %d: must be between 0 and 23", c.Method)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "city":
		return c.City, nil
	case "country":
		return c.Country, nil
	case "method":
		return strconv.Itoa(c.Method), nil
	case "base_url":
		return c.BaseURL, nil
	case "timeout":
		return c.Timeout.String(), nil
	case "log_level":
		return c.LogLevel, nil
	case "color":
		return strconv.FormatBool(c.Color), nil
	default:
		return "", fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}
}
