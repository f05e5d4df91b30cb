// Package config loads the application configuration from file and
// environment. Typed sections live in shared/config so inner layers can
// depend on them without pulling in viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	sharedconfig "chatledger/internal/shared/config"
)

// Config is the full application configuration.
type Config struct {
	Environment string                       `mapstructure:"environment"`
	Server      sharedconfig.ServerConfig    `mapstructure:"server"`
	Database    sharedconfig.DatabaseConfig  `mapstructure:"database"`
	Logger      sharedconfig.LoggerConfig    `mapstructure:"logger"`
	Auth        sharedconfig.AuthConfig      `mapstructure:"auth"`
	Redis       sharedconfig.RedisConfig     `mapstructure:"redis"`
	Billing     sharedconfig.BillingConfig   `mapstructure:"billing"`
	RateLimit   sharedconfig.RateLimitConfig `mapstructure:"rate_limit"`
}

// Load reads configuration from config.yaml and CHATLEDGER_* environment
// variables. Environment variables win over the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CHATLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; environment and defaults carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "chatledger")
	v.SetDefault("database.database", "chatledger")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("billing.payment_request_expiry_days", 7)
	v.SetDefault("billing.expiry_sweep_minutes", 30)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_minute", 60)
}

func validate(cfg *Config) error {
	if cfg.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is required")
	}
	if cfg.Auth.Webhook.Secret == "" {
		return fmt.Errorf("auth.webhook.secret is required")
	}
	return nil
}
