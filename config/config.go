package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Fetcher    FetcherConfig
	Comparison ComparisonConfig
	Registry   RegistryConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds SQLite configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// FetcherConfig holds page-fetcher configuration
type FetcherConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
}

// ComparisonConfig holds comparison-engine configuration
type ComparisonConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

// RegistryConfig holds source-registry configuration
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cenoskoczek/")

	// Environment variable settings
	v.SetEnvPrefix("CENOSKOCZEK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database defaults
	v.SetDefault("database.path", "database.db")

	// Fetcher defaults
	v.SetDefault("fetcher.timeout", "10s")
	v.SetDefault("fetcher.user_agent", "CenoSkoczek/1.0 (+https://cenoskoczek.example)")
	v.SetDefault("fetcher.rate_per_second", 2.0)
	v.SetDefault("fetcher.burst", 4)

	// Comparison defaults
	v.SetDefault("comparison.max_concurrency", 8)

	// Registry defaults
	v.SetDefault("registry.path", "registry.yaml")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if config.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher timeout must be positive, got: %s", config.Fetcher.Timeout)
	}

	if config.Fetcher.RatePerSecond <= 0 {
		return fmt.Errorf("fetcher rate must be positive, got: %f", config.Fetcher.RatePerSecond)
	}

	if config.Comparison.MaxConcurrency <= 0 {
		return fmt.Errorf("comparison max_concurrency must be positive, got: %d", config.Comparison.MaxConcurrency)
	}

	return nil
}
