package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fetchbites/cache"
	"fetchbites/recipes"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const configName = ".fetchbites"

// ErrConfigExists is returned by CreateDefaultConfig when it would replace a
// file without being asked to.
var ErrConfigExists = errors.New("config file already exists")

type Config struct {
	Endpoint       string `mapstructure:"endpoint"`
	RecipesBaseURL string `mapstructure:"recipes_base_url"`
	DefaultSort    string `mapstructure:"default_sort"`

	CacheCountLimit   int           `mapstructure:"cache_count_limit"`
	CacheCostLimitMB  int           `mapstructure:"cache_cost_limit_mb"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	ShareImageFetches bool          `mapstructure:"share_image_fetches"`

	LogLevel string `mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint:          "recipes",
		RecipesBaseURL:    "https://d3jbb8n5wk0qxi.cloudfront.net",
		DefaultSort:       "alphabetical",
		CacheCountLimit:   cache.DefaultCountLimit,
		CacheCostLimitMB:  int(cache.DefaultCostLimit / (1024 * 1024)),
		FetchTimeout:      15 * time.Second,
		ShareImageFetches: true,
		LogLevel:          "info",
	}
}

// CacheCostLimit is the configured cost limit in bytes.
func (c *Config) CacheCostLimit() int64 {
	return int64(c.CacheCostLimitMB) * 1024 * 1024
}

func setDefaults(v *viper.Viper, config *Config) {
	v.SetDefault("endpoint", config.Endpoint)
	v.SetDefault("recipes_base_url", config.RecipesBaseURL)
	v.SetDefault("default_sort", config.DefaultSort)
	v.SetDefault("cache_count_limit", config.CacheCountLimit)
	v.SetDefault("cache_cost_limit_mb", config.CacheCostLimitMB)
	v.SetDefault("fetch_timeout", config.FetchTimeout)
	v.SetDefault("share_image_fetches", config.ShareImageFetches)
	v.SetDefault("log_level", config.LogLevel)
}

// LoadConfig reads $HOME/.fetchbites.yaml (or ./.fetchbites.yaml), with
// FETCHBITES_* environment variables taking precedence. A missing file is not
// an error.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(home)
	v.AddConfigPath(".")
	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	return load(v)
}

// LoadConfigFile reads the given file instead of searching for one.
func LoadConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()
	setDefaults(v, config)

	v.SetEnvPrefix("fetchbites")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

func SaveConfigFile(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("endpoint", config.Endpoint)
	v.Set("recipes_base_url", config.RecipesBaseURL)
	v.Set("default_sort", config.DefaultSort)
	v.Set("cache_count_limit", config.CacheCountLimit)
	v.Set("cache_cost_limit_mb", config.CacheCostLimitMB)
	v.Set("fetch_timeout", config.FetchTimeout.String())
	v.Set("share_image_fetches", config.ShareImageFetches)
	v.Set("log_level", config.LogLevel)

	return v.WriteConfigAs(path)
}

func GetConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configName+".yaml"), nil
}

// CreateDefaultConfig writes the default configuration to path, or to
// GetConfigPath when path is empty, and returns the path written. An existing
// file is kept unless overwrite is set.
func CreateDefaultConfig(path string, overwrite bool) (string, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil && !overwrite {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := SaveConfigFile(DefaultConfig(), path); err != nil {
		return path, err
	}
	return path, nil
}

func ValidateConfig(config *Config) error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	found := false
	for _, level := range validLogLevels {
		if config.LogLevel == level {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	validEndpoints := []string{"recipes", "malformed", "empty"}
	found = false
	for _, endpoint := range validEndpoints {
		if config.Endpoint == endpoint {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid endpoint: %s", config.Endpoint)
	}

	if _, err := recipes.ParseSortOption(config.DefaultSort); err != nil {
		return err
	}

	if config.CacheCountLimit <= 0 {
		return fmt.Errorf("cache_count_limit must be positive: %d", config.CacheCountLimit)
	}
	if config.CacheCostLimitMB <= 0 {
		return fmt.Errorf("cache_cost_limit_mb must be positive: %d", config.CacheCostLimitMB)
	}
	if config.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive: %s", config.FetchTimeout)
	}

	return nil
}
