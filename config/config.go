package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Monitoring struct {
		PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
		MetricsPath       string `mapstructure:"metrics_path"`
	} `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StoreConfig tunes the in-memory record stores. The latency range
// emulates a network-bound backend for UI-responsiveness testing; it
// is not a correctness property.
type StoreConfig struct {
	LatencyMin time.Duration `mapstructure:"latency_min"`
	LatencyMax time.Duration `mapstructure:"latency_max"`
}

// RemoteConfig selects the remote table backend instead of the
// in-memory snapshot when enabled.
type RemoteConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"`
	ProjectID string        `mapstructure:"project_id"`
	PublicKey string        `mapstructure:"public_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("store.latency_min", "180ms")
	viper.SetDefault("store.latency_max", "320ms")
	viper.SetDefault("remote.timeout", "10s")
	viper.SetDefault("remote.cache_ttl", "30s")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("rate_limit.requests_per_second", 50.0)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
