package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := tempConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "jadwal-sholat"), dir)
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "jadwal-sholat"), dir)
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "jadwal-sholat", "config.yaml"), p)
}

func TestLoadFrom_NonExistentFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom("/no/such/file.yaml")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.City)
	assert.Equal(t, "Indonesia", cfg.Country)
	assert.Equal(t, 20, cfg.Method)
	assert.Equal(t, "https://api.aladhan.com/v1", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Color)
}

func TestLoadFrom_EmptyPath(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Method)
}

func TestLoadFrom_File(t *testing.T) {
	path := writeConfig(t, "city: Bandung\nmethod: 3\ntimeout: 5s\ncolor: false\n")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "Bandung", cfg.City)
	assert.Equal(t, "Indonesia", cfg.Country)
	assert.Equal(t, 3, cfg.Method)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.Color)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "city: [unterminated\n")

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "city: Bandung\nlog_level: info\n")
	t.Setenv("JADWAL_CITY", "Medan")
	t.Setenv("JADWAL_LOG_LEVEL", "debug")
	t.Setenv("JADWAL_METHOD", "11")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "Medan", cfg.City)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 11, cfg.Method)
}

func TestLoadFrom_EmptyEnvIgnored(t *testing.T) {
	path := writeConfig(t, "city: Bandung\n")
	t.Setenv("JADWAL_CITY", "")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "Bandung", cfg.City)
}

func TestLoadFrom_InvalidMethod(t *testing.T) {
	path := writeConfig(t, "method: 99\n")

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Method: 20, BaseURL: "http://x", Timeout: time.Second, LogLevel: "info"}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"negative method", func(c *Config) { c.Method = -1 }, "method"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, "base_url"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGet_AllValidKeys(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	for _, key := range ValidKeys {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "Get(%q)", key)
	}

	v, _ := cfg.Get("timeout")
	assert.Equal(t, "10s", v)
	v, _ = cfg.Get("method")
	assert.Equal(t, "20", v)
}

func TestGet_UnknownKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}
