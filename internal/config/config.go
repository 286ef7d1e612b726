package config

import "time"

// Config represents the application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig contains upstream HackerNews API settings
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
	MaxSize int           `mapstructure:"max_size" yaml:"max_size"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and replaces unusable values
// with defaults
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout < time.Millisecond {
		c.API.Timeout = DefaultTimeout
	}
	if c.Cache.TTL < 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.MaxSize < 0 {
		c.Cache.MaxSize = DefaultCacheMaxSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
