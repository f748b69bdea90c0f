package app

import (
	"errors"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/odyssey-erp/shopdesk/internal/platform/cache"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	APIBaseURL string        `envconfig:"API_BASE_URL" required:"true"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`

	RedisAddr         string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword     string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB           int           `envconfig:"REDIS_DB" default:"0"`
	LookupTTL         time.Duration `envconfig:"LOOKUP_TTL" default:"10m"`
	LookupRefreshCron string        `envconfig:"LOOKUP_REFRESH_CRON" default:"@every 10m"`

	SearchDebounce  time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"2s"`
	PageSize        int           `envconfig:"PAGE_SIZE" default:"10"`
	RateLimitPerMin int           `envconfig:"RATE_LIMIT_PER_MIN" default:"300"`
	LiveOrigins     []string      `envconfig:"LIVE_ORIGINS"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("API_BASE_URL must be an absolute http(s) URL")
	}
	if c.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be positive")
	}
	if c.RateLimitPerMin <= 0 {
		return errors.New("RATE_LIMIT_PER_MIN must be positive")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Redis returns the connection options of the shared Redis.
func (c *Config) Redis() cache.Options {
	return cache.Options{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

// RedisEnabled reports whether lookups are shared through Redis.
func (c *Config) RedisEnabled() bool {
	return c != nil && c.RedisAddr != ""
}
