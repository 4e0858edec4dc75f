package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
}

// UpstreamConfig describes one external REST collaborator.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type IdentityConfig struct {
	BaseURL  string        `yaml:"base_url" envconfig:"IDENTITY_BASE_URL"`
	APIToken string        `yaml:"api_token" envconfig:"IDENTITY_API_TOKEN"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"DB_HOST"`
	Port     int    `yaml:"port" envconfig:"DB_PORT"`
	User     string `yaml:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name     string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	Enabled  bool   `yaml:"enabled" envconfig:"DB_ENABLED"`
}

type RedisConfig struct {
	URL      string        `yaml:"url" envconfig:"REDIS_URL"`
	Enabled  bool          `yaml:"enabled" envconfig:"REDIS_ENABLED"`
	GuardTTL time.Duration `yaml:"guard_ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" envconfig:"SMTP_HOST"`
	Port     int    `yaml:"port" envconfig:"SMTP_PORT"`
	User     string `yaml:"user" envconfig:"SMTP_USER"`
	Password string `yaml:"password" envconfig:"SMTP_PASSWORD"`
	From     string `yaml:"from" envconfig:"SMTP_FROM"`
	Enabled  bool   `yaml:"enabled" envconfig:"SMTP_ENABLED"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `yaml:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    struct {
		Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
		Pretty bool   `yaml:"pretty" envconfig:"LOG_PRETTY"`
	} `yaml:"log"`
	Upstream struct {
		Appointments UpstreamConfig `yaml:"appointments"`
		Catalog      UpstreamConfig `yaml:"catalog"`
		Auth         UpstreamConfig `yaml:"auth"`
	} `yaml:"upstream"`
	Identity  IdentityConfig `yaml:"identity"`
	Database  DatabaseConfig `yaml:"database"`
	Redis     RedisConfig    `yaml:"redis"`
	SMTP      SMTPConfig     `yaml:"smtp"`
	JWT       JWTConfig      `yaml:"jwt"`
	RateLimit struct {
		RPS   float64 `yaml:"rps" envconfig:"RATE_LIMIT_RPS"`
		Burst int     `yaml:"burst" envconfig:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl"`
}

// LoadConfig reads config.yml and then applies BOOKING_* environment
// overrides, so containers can tweak single values without a file mount.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	// Decode against the yaml tags so snake_case keys map correctly.
	yamlTags := func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }
	if err := viper.Unmarshal(&cfg, yamlTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("BOOKING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Upstream.Appointments.Timeout == 0 {
		cfg.Upstream.Appointments.Timeout = 25 * time.Second
	}
	if cfg.Upstream.Catalog.Timeout == 0 {
		cfg.Upstream.Catalog.Timeout = 10 * time.Second
	}
	if cfg.Upstream.Auth.Timeout == 0 {
		cfg.Upstream.Auth.Timeout = 10 * time.Second
	}
	if cfg.Identity.Timeout == 0 {
		cfg.Identity.Timeout = 10 * time.Second
	}
	if cfg.Identity.CacheTTL == 0 {
		cfg.Identity.CacheTTL = 15 * time.Minute
	}
	if cfg.CatalogCacheTTL == 0 {
		cfg.CatalogCacheTTL = 10 * time.Minute
	}
	if cfg.Redis.GuardTTL == 0 {
		cfg.Redis.GuardTTL = 30 * time.Second
	}
	if cfg.RateLimit.RPS == 0 {
		cfg.RateLimit.RPS = 20
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 40
	}
	if cfg.JWT.ExpiryHours == 0 {
		cfg.JWT.ExpiryHours = 12
	}
}
