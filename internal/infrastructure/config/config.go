package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	Calculator CalculatorConfig
	Rates      RatesConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CalculatorConfig holds evaluator and session settings.
type CalculatorConfig struct {
	AngleMode     string        `envconfig:"CALC_ANGLE_MODE" default:"deg"`
	SessionTTL    time.Duration `envconfig:"CALC_SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"CALC_SESSION_SWEEP" default:"1m"`
	MaxTape       int           `envconfig:"CALC_MAX_TAPE" default:"512"`
}

// RatesConfig seeds the exchange-rate book, in units per USD.
type RatesConfig struct {
	File string  `envconfig:"RATES_FILE"`
	IDR  float64 `envconfig:"RATE_IDR" default:"15000"`
	JPY  float64 `envconfig:"RATE_JPY" default:"150"`
	KRW  float64 `envconfig:"RATE_KRW" default:"1300"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Calculator: CalculatorConfig{
			AngleMode:     "deg",
			SessionTTL:    30 * time.Minute,
			SweepInterval: time.Minute,
			MaxTape:       512,
		},
		Rates: RatesConfig{
			IDR: 15000,
			JPY: 150,
			KRW: 1300,
		},
	}
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if _, err := expr.ParseAngleMode(c.Calculator.AngleMode); err != nil {
		return fmt.Errorf("invalid CALC_ANGLE_MODE: %w", err)
	}
	if c.Calculator.SessionTTL <= 0 {
		return fmt.Errorf("CALC_SESSION_TTL must be positive, got %s", c.Calculator.SessionTTL)
	}
	if c.Calculator.SweepInterval <= 0 {
		return fmt.Errorf("CALC_SESSION_SWEEP must be positive, got %s", c.Calculator.SweepInterval)
	}
	if c.Calculator.MaxTape < 0 {
		return fmt.Errorf("CALC_MAX_TAPE must not be negative, got %d", c.Calculator.MaxTape)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit needs positive RATE_LIMIT_RPS and RATE_LIMIT_BURST")
	}
	return nil
}

// Mode returns the initial angle mode for new sessions.
func (c CalculatorConfig) Mode() expr.AngleMode {
	mode, err := expr.ParseAngleMode(c.AngleMode)
	if err != nil {
		return expr.Degrees
	}
	return mode
}

// Seed returns the configured rates keyed by currency code.
func (r RatesConfig) Seed() map[string]float64 {
	return map[string]float64{
		"IDR": r.IDR,
		"JPY": r.JPY,
		"KRW": r.KRW,
	}
}
