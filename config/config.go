package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the server.
// Tags use mapstructure for Viper unmarshalling and env variable binding.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	Environment string `mapstructure:"ENVIRONMENT"` // "development" or "production"

	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`

	// Access and refresh credentials use distinct secrets so a leaked
	// access secret cannot forge refresh credentials.
	AccessTokenSecret   string `mapstructure:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret  string `mapstructure:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTLMin   int    `mapstructure:"ACCESS_TOKEN_TTL_MIN"`
	RefreshTokenTTLHour int    `mapstructure:"REFRESH_TOKEN_TTL_HOUR"`

	ImageStoreURL string `mapstructure:"IMAGE_STORE_URL"`
}

// IsProduction reports whether the server runs with production
// hardening (Secure cookies).
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// AccessTokenTTL returns the configured access credential lifetime.
func (c *ServerConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMin) * time.Minute
}

// RefreshTokenTTL returns the configured refresh credential lifetime.
func (c *ServerConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHour) * time.Hour
}

// LoadConfig reads configuration from file, environment variables, and defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/ecommerce/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "5000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/ecommerce_dev")
	v.SetDefault("MONGO_DB_NAME", "ecommerce_dev")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("ACCESS_TOKEN_SECRET", "access_secret_change_me")   // CHANGE IN PRODUCTION
	v.SetDefault("REFRESH_TOKEN_SECRET", "refresh_secret_change_me") // CHANGE IN PRODUCTION
	v.SetDefault("ACCESS_TOKEN_TTL_MIN", 15)
	v.SetDefault("REFRESH_TOKEN_TTL_HOUR", 168) // 7 days
	v.SetDefault("IMAGE_STORE_URL", "http://localhost:9000/images")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
