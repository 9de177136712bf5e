// Package middleware provides the HTTP middleware stack for the calculator
// backend.
//
// Middleware stack includes:
//   - RequestID: X-Request-ID propagation (UUID)
//   - Logger, Recovery: zap request logs and panic recovery
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle cleanup
//   - GlobalRateLimit: One bucket for every client
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
