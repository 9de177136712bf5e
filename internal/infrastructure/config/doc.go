// Package config provides 12-factor configuration management for the
// calculator backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Calculator: Default angle mode, session expiry, tape length limit
//   - Rates: Exchange-rate seed values and optional rates file
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CALC_ANGLE_MODE, CALC_SESSION_TTL, CALC_SESSION_SWEEP, CALC_MAX_TAPE
//   - RATES_FILE, RATE_IDR, RATE_JPY, RATE_KRW
package config
