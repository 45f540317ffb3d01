package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, 100, cfg.CacheCountLimit)
	assert.Equal(t, int64(50*1024*1024), cfg.CacheCostLimit())
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
		{"bad endpoint", func(c *Config) { c.Endpoint = "staging" }, "invalid endpoint"},
		{"bad sort", func(c *Config) { c.DefaultSort = "rating" }, "invalid sort option"},
		{"zero count", func(c *Config) { c.CacheCountLimit = 0 }, "cache_count_limit"},
		{"negative cost", func(c *Config) { c.CacheCostLimitMB = -1 }, "cache_cost_limit_mb"},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }, "fetch_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveAndLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".fetchbites.yaml")

	cfg := DefaultConfig()
	cfg.Endpoint = "empty"
	cfg.CacheCountLimit = 12
	cfg.FetchTimeout = 3 * time.Second
	require.NoError(t, SaveConfigFile(cfg, path))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigFileDefaultsAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_count_limit: 7\n"), 0o644))
	t.Setenv("FETCHBITES_LOG_LEVEL", "debug")

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.CacheCountLimit)
	assert.Equal(t, "debug", loaded.LogLevel)
	assert.Equal(t, DefaultConfig().FetchTimeout, loaded.FetchTimeout)
	assert.Equal(t, "recipes", loaded.Endpoint)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".fetchbites.yaml")

	written, err := CreateDefaultConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)

	_, err = CreateDefaultConfig(path, false)
	assert.True(t, errors.Is(err, ErrConfigExists), "got %v", err)

	_, err = CreateDefaultConfig(path, true)
	assert.NoError(t, err)
}

func TestCreateDefaultConfigInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	written, err := CreateDefaultConfig("", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".fetchbites.yaml"), written)
	assert.FileExists(t, written)
}
