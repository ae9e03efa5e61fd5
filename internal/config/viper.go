// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/txsearch/internal/operator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Catalog backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "TXSEARCH"

// Config represents the complete application configuration
type Config struct {
	Log          LogConfig          `mapstructure:"log" yaml:"log"`
	Search       SearchConfig       `mapstructure:"search" yaml:"search"`
	Catalog      CatalogConfig      `mapstructure:"catalog" yaml:"catalog"`
	Cache        CacheConfig        `mapstructure:"cache" yaml:"cache"`
	Transactions TransactionsConfig `mapstructure:"transactions" yaml:"transactions"`
}

// LogConfig selects the log level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SearchConfig tunes query evaluation.
type SearchConfig struct {
	// Operators whitelists operator names; empty enables all of them.
	Operators     []string `mapstructure:"operators" yaml:"operators"`
	ResolverLimit int      `mapstructure:"resolver_limit" yaml:"resolver_limit"`
	PageSize      int      `mapstructure:"page_size" yaml:"page_size"`
	MaxParallel   int      `mapstructure:"max_parallel" yaml:"max_parallel"`
}

// CatalogConfig selects where entity lookups are answered from.
type CatalogConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	File       string `mapstructure:"file" yaml:"file"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// CacheConfig controls the resolver cache.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled" yaml:"enabled"`
	Size       int  `mapstructure:"size" yaml:"size"`
	TTLSeconds int  `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

// TransactionsConfig points at the CSV file searched by default.
type TransactionsConfig struct {
	File      string `mapstructure:"file" yaml:"file"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig is InitializeConfig with an explicit config file. An empty path
// searches $HOME/.txsearch, .txsearch and the working directory for
// config.yaml; a missing file there is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.txsearch")
		v.AddConfigPath(".txsearch")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Search defaults
	v.SetDefault("search.operators", []string{})
	v.SetDefault("search.resolver_limit", 25)
	v.SetDefault("search.page_size", 50)
	v.SetDefault("search.max_parallel", 4)

	// Catalog defaults
	v.SetDefault("catalog.backend", BackendYAML)
	v.SetDefault("catalog.file", "catalog.yaml")
	v.SetDefault("catalog.sqlite_path", "txsearch.db")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl_seconds", 300)

	// Transactions defaults
	v.SetDefault("transactions.file", "")
	v.SetDefault("transactions.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if _, err := operator.NewRegistry(config.Search.Operators); err != nil {
		return fmt.Errorf("search.operators: %w", err)
	}
	if config.Search.ResolverLimit < 1 {
		return fmt.Errorf("search.resolver_limit must be positive, got: %d", config.Search.ResolverLimit)
	}
	if config.Search.PageSize < 1 {
		return fmt.Errorf("search.page_size must be positive, got: %d", config.Search.PageSize)
	}
	if config.Search.MaxParallel < 1 {
		return fmt.Errorf("search.max_parallel must be positive, got: %d", config.Search.MaxParallel)
	}

	switch config.Catalog.Backend {
	case BackendYAML:
		if config.Catalog.File == "" {
			return fmt.Errorf("catalog.file is required for the yaml backend")
		}
	case BackendSQLite:
		if config.Catalog.SQLitePath == "" {
			return fmt.Errorf("catalog.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid catalog backend: %s (must be '%s' or '%s')", config.Catalog.Backend, BackendYAML, BackendSQLite)
	}

	if config.Cache.Enabled {
		if config.Cache.Size < 1 {
			return fmt.Errorf("cache.size must be positive when the cache is enabled, got: %d", config.Cache.Size)
		}
		if config.Cache.TTLSeconds < 1 {
			return fmt.Errorf("cache.ttl_seconds must be positive when the cache is enabled, got: %d", config.Cache.TTLSeconds)
		}
	}

	if len([]rune(config.Transactions.Delimiter)) != 1 && config.Transactions.Delimiter != `\t` {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Transactions.Delimiter)
	}

	return nil
}
