package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault tests the default configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, DefaultCacheMaxSize, cfg.Cache.MaxSize)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
}

// TestConfig_Validate tests that unusable values fall back to defaults
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty base URL falls back",
			cfg:  Config{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
			},
		},
		{
			name: "sub-millisecond timeout falls back",
			cfg:  Config{API: APIConfig{Timeout: -time.Second}},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
			},
		},
		{
			name: "negative cache bounds fall back",
			cfg:  Config{Cache: CacheConfig{TTL: -time.Minute, MaxSize: -1}},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
				assert.Equal(t, DefaultCacheMaxSize, cfg.Cache.MaxSize)
			},
		},
		{
			name: "zero cache bounds are respected as disable switches",
			cfg:  Config{Cache: CacheConfig{TTL: 0, MaxSize: 0}},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
				assert.Equal(t, 0, cfg.Cache.MaxSize)
			},
		},
		{
			name: "valid values are untouched",
			cfg: Config{
				API:   APIConfig{BaseURL: "http://localhost:8080", Timeout: 3 * time.Second},
				Cache: CacheConfig{TTL: time.Minute, MaxSize: 10},
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
				assert.Equal(t, 3*time.Second, cfg.API.Timeout)
				assert.Equal(t, time.Minute, cfg.Cache.TTL)
				assert.Equal(t, 10, cfg.Cache.MaxSize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			require.NoError(t, cfg.Validate())
			tt.check(t, &cfg)
		})
	}
}

// TestLoad_Environment tests environment variable overrides
func TestLoad_Environment(t *testing.T) {
	t.Setenv("HNMCP_API_TIMEOUT", "30s")
	t.Setenv("HNMCP_CACHE_MAX_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 50, cfg.Cache.MaxSize)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
}
