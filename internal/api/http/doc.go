// Package http provides HTTP handlers and routing for the calculator REST API.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//   - Evaluation: /evaluate
//   - Sessions: /sessions, /sessions/:id, /sessions/:id/keys, /sessions/:id/mode
//   - Conversion: /convert/units, /convert/rates
//   - Metrics: /metrics/json
//
// Evaluation failures are not HTTP errors. They answer 200 with the display
// text "Error" and an error_kind field, the way the keypad shows them.
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, sessions, evaluator, expr.Degrees, rates, metrics, logger)
//	handlers.Register(router)
package http
