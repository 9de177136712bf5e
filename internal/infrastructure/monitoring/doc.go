/*
Package monitoring provides metrics collection for the calculator backend.

# Overview

Metrics live on a per-instance Prometheus registry and cover HTTP traffic,
expression evaluations (by outcome), keypad input, service tool calls,
sessions, exchange-rate edits and WebSocket connections.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "convert", "convert.length")
	// ... run the tool ...
	timer.Stop("success")
*/
package monitoring
