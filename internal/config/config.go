package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	UpstreamBaseURL string        `envconfig:"FMP_BASE_URL" default:"https://financialmodelingprep.com"`
	UpstreamAPIKey  string        `envconfig:"FMP_API_KEY" default:""`
	UpstreamTimeout time.Duration `envconfig:"FMP_TIMEOUT" default:"10s"`

	RedisURL      string        `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	QuoteCacheTTL time.Duration `envconfig:"QUOTE_CACHE_TTL" default:"30s"`
	NewsCacheTTL  time.Duration `envconfig:"NEWS_CACHE_TTL" default:"5m"`
	ScrapeTTL     time.Duration `envconfig:"SCRAPE_TTL" default:"1m"`

	APIHost         string        `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort         string        `envconfig:"API_PORT" default:"8000"`
	APIReadTimeout  time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	APIWriteTimeout time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`

	RSSTimeout     time.Duration `envconfig:"RSS_TIMEOUT" default:"15s"`
	RSSMaxArticles int           `envconfig:"RSS_MAX_ARTICLES" default:"5"`

	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"100"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() *Config {
	// .env is optional; deployments normally set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}
