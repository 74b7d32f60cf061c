package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	APIBaseURL            string        `mapstructure:"api_base_url"`
	HeroesPath            string        `mapstructure:"heroes_path"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	NotifiersFile        string        `mapstructure:"notifiers_file"`
	NotifyTimeoutSeconds int64         `mapstructure:"notify_timeout_seconds"`
	NotifyTimeout        time.Duration `mapstructure:"-"`

	MessageStoreType       string        `mapstructure:"message_store_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	MessageTTLSeconds      int64         `mapstructure:"message_ttl_seconds"`
	MessageCleanupSeconds  int64         `mapstructure:"message_cleanup_interval_seconds"`
	MessageTTL             time.Duration `mapstructure:"-"`
	MessageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "hero-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("heroes_path", "api/heroes")
	v.SetDefault("request_timeout_seconds", 10)
	v.SetDefault("notifiers_file", "")
	v.SetDefault("notify_timeout_seconds", 5)
	v.SetDefault("message_store_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/messages.db")
	v.SetDefault("message_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("message_cleanup_interval_seconds", int64(time.Hour/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}
	cfg.HeroesPath = strings.Trim(strings.TrimSpace(cfg.HeroesPath), "/")
	if cfg.HeroesPath == "" {
		return nil, fmt.Errorf("heroes_path is required")
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.NotifyTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid notify_timeout_seconds (must be positive seconds)")
	}
	cfg.NotifyTimeout = time.Duration(cfg.NotifyTimeoutSeconds) * time.Second

	if cfg.MessageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid message_ttl_seconds (must be positive seconds)")
	}
	if cfg.MessageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid message_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.MessageTTL = time.Duration(cfg.MessageTTLSeconds) * time.Second
	cfg.MessageCleanupInterval = time.Duration(cfg.MessageCleanupSeconds) * time.Second

	return &cfg, nil
}
