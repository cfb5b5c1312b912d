package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the storefront client
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Listing ListingConfig `mapstructure:"listing"`
	State   StateConfig   `mapstructure:"state"`
	Redis   RedisConfig   `mapstructure:"redis"`
	UI      UIConfig      `mapstructure:"ui"`
}

// APIConfig holds StyleSphere API configuration
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	MaxWorkers           int    `mapstructure:"max_workers"`
}

// ListingConfig holds product listing defaults
type ListingConfig struct {
	PageSize   int    `mapstructure:"page_size"`
	FetchSize  int    `mapstructure:"fetch_size"`
	Status     string `mapstructure:"status"`
	DebounceMS int    `mapstructure:"debounce_ms"`
}

// StateConfig selects where durable client state (token, profile, theme) lives
type StateConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "redis"
	Path    string `mapstructure:"path"`
}

// RedisConfig holds Redis connection details for the redis state backend
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// UIConfig holds presentation preferences
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env cover the CLI case
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:8080/api")
	viper.SetDefault("api.timeout", 10)
	viper.SetDefault("api.max_requests_per_second", 5)
	viper.SetDefault("api.max_workers", 4)

	viper.SetDefault("listing.page_size", 12)
	viper.SetDefault("listing.fetch_size", 100)
	viper.SetDefault("listing.status", "active")
	viper.SetDefault("listing.debounce_ms", 300)

	viper.SetDefault("state.backend", "file")
	viper.SetDefault("state.path", "./storefront_state.json")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("ui.theme", "light")
}
