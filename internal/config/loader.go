package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the file leaves a field empty.
const (
	EnvKeyID          = "KALSHI_KEY_ID"
	EnvPrivateKey     = "KALSHI_PRIVATE_KEY"
	EnvPrivateKeyPath = "KALSHI_PRIVATE_KEY_PATH"
	EnvRedisAddr      = "REDIS_ADDR"
)

// DefaultRedisAddr is used when neither the file nor REDIS_ADDR names one.
const DefaultRedisAddr = "localhost:6379"

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := cfg.decodeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithDefaults applies default values, overlays the config file, then
// fills fields the file left empty from the environment. Values written in
// the file, explicit zeros included, are kept.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := newDefault()
	if err != nil {
		return nil, err
	}
	if err := cfg.decodeFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv builds a validated config from defaults and the environment only.
func LoadFromEnv() (*Config, error) {
	cfg, err := newDefault()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func newDefault() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	return cfg, nil
}

// decodeFile unmarshals the file over c. Keys absent from the file leave
// the current value untouched.
func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Auth.KeyID, EnvKeyID)
	setFromEnv(&c.Auth.PrivateKey, EnvPrivateKey)
	setFromEnv(&c.Auth.PrivateKeyPath, EnvPrivateKeyPath)
	setFromEnv(&c.Cache.Redis.Addr, EnvRedisAddr)
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = DefaultRedisAddr
	}
}

func setFromEnv(field *string, key string) {
	if *field != "" {
		return
	}
	if v, ok := os.LookupEnv(key); ok {
		*field = v
	}
}
