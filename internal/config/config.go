package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"currency-cache/internal/domain/model"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server      ServerConfig
	CurrencyAPI CurrencyAPIConfig
	Cache       CacheConfig
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
}

type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" env-default:"4670"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
}

type CurrencyAPIConfig struct {
	BaseURL string        `env:"CURRENCY_API_BASE_URL" env-default:"https://api.currencyapi.com/v3"`
	APIKey  string        `env:"CURRENCY_API_KEY"`
	Timeout time.Duration `env:"CURRENCY_API_TIMEOUT" env-default:"10s"`
}

type CacheConfig struct {
	DataDir string `env:"CURRENCY_DATA"`
	// WarmInterval is how often the server pre-loads the catalog and the
	// latest settled rates. Zero disables warming.
	WarmInterval time.Duration `env:"CACHE_WARM_INTERVAL" env-default:"1h"`
}

// LoadConfig reads the configuration from the environment and validates it.
// Every failure is a *model.ConfigError.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, &model.ConfigError{Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Cache.DataDir == "" {
		return &model.ConfigError{Field: "CURRENCY_DATA", Err: errors.New("required")}
	}
	if c.CurrencyAPI.APIKey == "" {
		return &model.ConfigError{Field: "CURRENCY_API_KEY", Err: errors.New("required")}
	}
	if c.CurrencyAPI.Timeout <= 0 {
		return &model.ConfigError{Field: "CURRENCY_API_TIMEOUT", Err: fmt.Errorf("must be positive, got %s", c.CurrencyAPI.Timeout)}
	}
	if c.Cache.WarmInterval < 0 {
		return &model.ConfigError{Field: "CACHE_WARM_INTERVAL", Err: fmt.Errorf("must not be negative, got %s", c.Cache.WarmInterval)}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &model.ConfigError{Field: "SERVER_PORT", Err: fmt.Errorf("must be between 1 and 65535, got %d", c.Server.Port)}
	}

	u, err := url.Parse(c.CurrencyAPI.BaseURL)
	if err != nil {
		return &model.ConfigError{Field: "CURRENCY_API_BASE_URL", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return &model.ConfigError{Field: "CURRENCY_API_BASE_URL", Err: fmt.Errorf("must be an absolute http(s) URL, got %q", c.CurrencyAPI.BaseURL)}
	}
	return nil
}
