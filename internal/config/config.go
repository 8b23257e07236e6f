package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cart    CartConfig    `mapstructure:"cart"`
	Payment PaymentConfig `mapstructure:"payment"`
	Site    SiteConfig    `mapstructure:"site"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type CatalogConfig struct {
	URL          string        `mapstructure:"url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// CartConfig selects the cart backend: "file", "redis", or "memory".
type CartConfig struct {
	Backend      string `mapstructure:"backend"`
	FilePath     string `mapstructure:"file_path"`
	RedisAddr    string `mapstructure:"redis_addr"`
	RedisKey     string `mapstructure:"redis_key"`
	RedisChannel string `mapstructure:"redis_channel"`
}

// PaymentConfig points at the provider's REST API. An empty base URL
// selects the sandbox gateway, which approves everything.
type PaymentConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	ClientID string `mapstructure:"client_id"`
	Secret   string `mapstructure:"secret"`
	Currency string `mapstructure:"currency"`
}

// SiteConfig drives sitemap generation. Environment switches the base
// URL between the production and development hosts.
type SiteConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	DevBaseURL  string `mapstructure:"dev_base_url"`
	Environment string `mapstructure:"environment"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Production reports whether the site runs under the production flag.
func (s SiteConfig) Production() bool {
	return s.Environment == "production"
}

// ResolvedBaseURL picks the base URL for generated links and the
// sitemap according to the environment flag.
func (s SiteConfig) ResolvedBaseURL() string {
	if s.Production() {
		return s.BaseURL
	}
	return s.DevBaseURL
}

// Load reads config.yaml plus STOREFRONT_-prefixed environment
// overrides. A missing config file is fine; defaults carry a local run.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("$HOME/.storefront/")
	v.AddConfigPath("/etc/storefront/")

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("catalog.fetch_timeout", 15*time.Second)
	v.SetDefault("cart.backend", "file")
	v.SetDefault("cart.file_path", "data/cart.json")
	v.SetDefault("cart.redis_addr", "localhost:6379")
	v.SetDefault("cart.redis_key", "cart")
	v.SetDefault("cart.redis_channel", "cart:changed")
	v.SetDefault("payment.currency", "USD")
	v.SetDefault("site.base_url", "https://shop.example.com")
	v.SetDefault("site.dev_base_url", "http://localhost:8080")
	v.SetDefault("site.environment", "development")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
