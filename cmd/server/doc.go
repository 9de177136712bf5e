// Package main is the entry point for the calcpad HTTP server.
//
// The server provides:
//   - Stateless expression evaluation
//   - Keypad sessions over REST and WebSocket
//   - Unit and currency conversion with editable rates
//   - A service registry exposing calculator and conversion tools
//   - Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -rates rates.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
