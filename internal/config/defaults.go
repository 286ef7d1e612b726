package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// API defaults
	DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	DefaultTimeout = 10 * time.Second

	// Cache defaults
	DefaultCacheTTL     = 5 * time.Minute
	DefaultCacheMaxSize = 500

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hn-mcp"
	}
	return filepath.Join(home, ".hn-mcp")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Cache: CacheConfig{
			TTL:     DefaultCacheTTL,
			MaxSize: DefaultCacheMaxSize,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
