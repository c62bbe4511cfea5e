package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete client configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Logging LoggingConfig `mapstructure:"logging"`
	Debug   DebugConfig   `mapstructure:"debug"`
}

// APIConfig points the client at the remote game API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig configures the durable key-value store. An empty URL switches
// the client to the in-memory store, losing persistence across restarts.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// RefreshConfig controls the background polling loop.
type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DebugConfig controls the optional internal observability listener. The
// client owns no ports unless this is set.
type DebugConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/survival-client")

	viper.SetEnvPrefix("SURVIVAL_CLIENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("api.base_url", "SURVIVAL_CLIENT_API_BASE_URL")
	viper.BindEnv("redis.url", "SURVIVAL_CLIENT_REDIS_URL")
	viper.BindEnv("debug.listen_addr", "SURVIVAL_CLIENT_DEBUG_LISTEN_ADDR")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults + env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("refresh.interval", "2m")
	viper.SetDefault("logging.level", "info")
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required (set SURVIVAL_CLIENT_API_BASE_URL)")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://")
	}
	if c.Redis.URL != "" && !strings.HasPrefix(c.Redis.URL, "redis://") {
		return fmt.Errorf("redis.url must start with redis://")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", c.API.Timeout)
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive, got %v", c.Refresh.Interval)
	}
	if c.Refresh.Interval > time.Hour {
		return fmt.Errorf("refresh.interval seems too large, got %v", c.Refresh.Interval)
	}
	return nil
}
