// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The level comes from LOG_LEVEL and the mode from LOG_DEV (see the config
// package). Subsystems log through a named child:
//
//	logger := logging.NewDefault()
//	sessions := logger.Component("session")
//	sessions.Info("Session created", zap.String("session_id", id))
package logging
