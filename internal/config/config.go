package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderRapidAPI = "rapidapi"
	ProviderOpenAI   = "openai"

	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type Config struct {
	Provider        string        `env:"PROVIDER"          envDefault:"rapidapi"`
	RapidAPIKey     string        `env:"RAPIDAPI_KEY"`
	RapidAPIHost    string        `env:"RAPIDAPI_HOST"     envDefault:"ai-article-extractor-and-summarizer.p.rapidapi.com"`
	RapidAPIBaseURL string        `env:"RAPIDAPI_BASE_URL"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT"  envDefault:"30s"`

	CacheBackend  string `env:"CACHE_BACKEND"  envDefault:"sqlite"`
	CachePrefix   string `env:"CACHE_PREFIX"   envDefault:"summary-"`
	DBPath        string `env:"DB_PATH"        envDefault:"db.sqlite"`
	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	CoalesceRequests bool `env:"COALESCE_REQUESTS" envDefault:"false"`
	BatchConcurrency int  `env:"BATCH_CONCURRENCY" envDefault:"4"`

	WarmFeeds []string `env:"WARM_FEEDS"`
	WarmSpec  string   `env:"WARM_SPEC"  envDefault:"0 * * * *"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()

	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// RapidAPIEndpoint returns the base URL requests are sent to. An explicit
// RAPIDAPI_BASE_URL wins over the one derived from the host.
func (c Config) RapidAPIEndpoint() string {
	if c.RapidAPIBaseURL != "" {
		return strings.TrimRight(c.RapidAPIBaseURL, "/")
	}

	return "https://" + c.RapidAPIHost
}

func (c Config) Validate() error {
	var errs []error

	switch c.Provider {
	case ProviderRapidAPI:
		if c.RapidAPIKey == "" {
			errs = append(errs, errors.New("RAPIDAPI_KEY is required for rapidapi provider"))
		}
		if c.RapidAPIHost == "" {
			errs = append(errs, errors.New("RAPIDAPI_HOST is empty"))
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for openai provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider (PROVIDER = %q)", c.Provider))
	}

	switch c.CacheBackend {
	case CacheBackendSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is empty"))
		}
	case CacheBackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is empty"))
		}
	case CacheBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend (CACHE_BACKEND = %q)", c.CacheBackend))
	}

	if c.ProviderTimeout < 0 {
		errs = append(errs, fmt.Errorf("PROVIDER_TIMEOUT is negative (%s)", c.ProviderTimeout))
	}

	if c.BatchConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("BATCH_CONCURRENCY must be positive (%d)", c.BatchConcurrency))
	}

	return errors.Join(errs...)
}

func (c *Config) normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))
	c.RapidAPIKey = strings.TrimSpace(c.RapidAPIKey)
	c.RapidAPIHost = strings.TrimSpace(c.RapidAPIHost)
	c.RapidAPIBaseURL = strings.TrimSpace(c.RapidAPIBaseURL)
	c.OpenAIAPIKey = strings.TrimSpace(c.OpenAIAPIKey)
	c.DBPath = strings.TrimSpace(c.DBPath)
	c.RedisAddr = strings.TrimSpace(c.RedisAddr)

	feeds := c.WarmFeeds[:0]
	for _, f := range c.WarmFeeds {
		if f = strings.TrimSpace(f); f != "" {
			feeds = append(feeds, f)
		}
	}
	c.WarmFeeds = feeds
}
