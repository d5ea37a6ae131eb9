package config

import (
	"time"

	"github.com/rickgao/kalshi-signals/internal/model"
)

// Config is the root configuration for the dashboard.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Series  SeriesConfig  `yaml:"series"`
	Model   ModelConfig   `yaml:"model"`
	Polls   PollsConfig   `yaml:"polls"`
	Cache   CacheConfig   `yaml:"cache"`
	Refresh RefreshConfig `yaml:"refresh"`
	History HistoryConfig `yaml:"history"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig holds Kalshi API settings.
type APIConfig struct {
	RestURL       string        `yaml:"rest_url" default:"https://api.elections.kalshi.com/trade-api/v2" validate:"required,url"`
	Timeout       time.Duration `yaml:"timeout" default:"15s" validate:"gt=0"`
	MaxRetries    int           `yaml:"max_retries" validate:"gte=0,lte=10"` // 0 disables retry
	RatePerSecond float64       `yaml:"rate_per_second" default:"10" validate:"gte=0"`
	RateBurst     int           `yaml:"rate_burst" default:"5" validate:"gte=1"`
}

// AuthConfig holds portfolio credentials. All fields are optional; without
// them the portfolio section is disabled.
type AuthConfig struct {
	KeyID          string `yaml:"key_id"`           // API key ID (for KALSHI-ACCESS-KEY header)
	PrivateKey     string `yaml:"private_key"`      // PEM text, literal \n allowed
	PrivateKeyPath string `yaml:"private_key_path"` // Path to RSA private key PEM file
}

// SeriesConfig names the market series that are discovered each cycle.
type SeriesConfig struct {
	House       string `yaml:"house" default:"CONTROLH" validate:"required"`
	Senate      string `yaml:"senate" default:"CONTROLS" validate:"required"`
	Combo       string `yaml:"combo" default:"KXBALANCEPOWERCOMBO"`
	MarketLimit int    `yaml:"market_limit" default:"50" validate:"gte=1,lte=1000"`
}

// ModelConfig holds fair-value and signal parameters.
type ModelConfig struct {
	Sensitivity         float64     `yaml:"sensitivity" default:"6" validate:"gt=0"`
	Floor               float64     `yaml:"floor" default:"10" validate:"gte=0,lte=100"`
	Ceiling             float64     `yaml:"ceiling" default:"90" validate:"gte=0,lte=100"`
	SenateFair          float64     `yaml:"senate_fair" default:"58" validate:"gte=0,lte=100"`
	HouseParty          model.Party `yaml:"house_party" default:"D" validate:"oneof=D R"`
	SenateParty         model.Party `yaml:"senate_party" default:"R" validate:"oneof=D R"`
	ComboDriftTolerance float64     `yaml:"combo_drift_tolerance" default:"5" validate:"gte=0"`
}

// PollsConfig holds generic-ballot scraper settings.
type PollsConfig struct {
	URL         string        `yaml:"url" default:"https://www.realclearpolling.com/polls/state-of-the-union/generic-congressional-vote" validate:"required,url"`
	Timeout     time.Duration `yaml:"timeout" default:"15s" validate:"gt=0"`
	FallbackDem float64       `yaml:"fallback_dem" default:"47" validate:"gte=0,lte=100"`
	FallbackRep float64       `yaml:"fallback_rep" default:"43" validate:"gte=0,lte=100"`
}

// CacheConfig selects the cache backend and per-operation lifetimes.
type CacheConfig struct {
	Backend string         `yaml:"backend" default:"memory" validate:"oneof=memory redis none"`
	Redis   RedisConfig    `yaml:"redis"`
	TTL     CacheTTLConfig `yaml:"ttl"`
}

// RedisConfig holds the shared cache connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"` // REDIS_ADDR, then DefaultRedisAddr
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix" default:"kalshi-signals"`
}

// CacheTTLConfig holds one lifetime per cached operation.
type CacheTTLConfig struct {
	Markets     time.Duration `yaml:"markets" default:"2m"`
	MarketPrice time.Duration `yaml:"market_price" default:"2m"`
	Candles     time.Duration `yaml:"candles" default:"5m"`
	Polls       time.Duration `yaml:"polls" default:"10m"`
	Portfolio   time.Duration `yaml:"portfolio" default:"2m"`
	Settlements time.Duration `yaml:"settlements" default:"5m"`
}

// RefreshConfig holds auto-refresh settings.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" default:"10m" validate:"gt=0"`
	Timeout  time.Duration `yaml:"timeout" default:"2m" validate:"gt=0"`
}

// HistoryConfig holds price history settings.
type HistoryConfig struct {
	Range string `yaml:"range" default:"3M" validate:"oneof=1W 1M 3M 6M All"`
}

// ServerConfig holds the web dashboard listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" default:":8080" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s" validate:"gt=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"text" validate:"oneof=text json"`
}

// HasCredentials reports whether any credential source is configured.
func (c *Config) HasCredentials() bool {
	return c.Auth.KeyID != "" && (c.Auth.PrivateKey != "" || c.Auth.PrivateKeyPath != "")
}
