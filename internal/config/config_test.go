package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("SURVIVAL_CLIENT_API_BASE_URL", "https://api.ashfall.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.ashfall.example", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Debug.ListenAddr)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	viper.Reset()

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url is required")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://localhost:8080", Timeout: 10 * time.Second},
			Refresh: RefreshConfig{Interval: 2 * time.Minute},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("bad base url scheme", func(t *testing.T) {
		cfg := valid()
		cfg.API.BaseURL = "ftp://nope"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad redis url scheme", func(t *testing.T) {
		cfg := valid()
		cfg.Redis.URL = "http://not-redis"
		assert.Error(t, cfg.Validate())
	})

	t.Run("valid redis url", func(t *testing.T) {
		cfg := valid()
		cfg.Redis.URL = "redis://localhost:6379/0"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := valid()
		cfg.API.Timeout = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("refresh interval over an hour", func(t *testing.T) {
		cfg := valid()
		cfg.Refresh.Interval = 2 * time.Hour
		assert.Error(t, cfg.Validate())
	})
}
