package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/calcpad/backend/internal/domain/service"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/session"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/monitoring"
)

// MetricsAggregator serves a JSON view of the collectors behind /metrics
type MetricsAggregator struct {
	metrics  *monitoring.Metrics
	sessions *session.Manager
	registry *service.Registry
}

// NewMetricsAggregator creates a metrics aggregator
func NewMetricsAggregator(metrics *monitoring.Metrics, sessions *session.Manager, registry *service.Registry) *MetricsAggregator {
	return &MetricsAggregator{
		metrics:  metrics,
		sessions: sessions,
		registry: registry,
	}
}

// MetricsSnapshot represents a snapshot of all service metrics
type MetricsSnapshot struct {
	Timestamp time.Time                  `json:"timestamp"`
	Backend   monitoring.MetricsSnapshot `json:"backend"`
	Sessions  session.Stats              `json:"sessions"`
	Services  map[string]interface{}     `json:"services"`
	Summary   MetricsSummary             `json:"summary"`
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests       int64   `json:"total_requests"`
	AverageLatencyMs    float64 `json:"average_latency_ms"`
	ErrorRate           float64 `json:"error_rate"`
	EvaluationErrorRate float64 `json:"evaluation_error_rate"`
	ActiveConnections   int64   `json:"active_connections"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
}

// GetAggregatedMetrics returns the JSON metrics snapshot
func (ma *MetricsAggregator) GetAggregatedMetrics(c *gin.Context) {
	backend := ma.metrics.Snapshot()
	c.JSON(http.StatusOK, MetricsSnapshot{
		Timestamp: time.Now(),
		Backend:   backend,
		Sessions:  ma.sessions.Stats(),
		Services:  ma.registry.Stats(),
		Summary:   summarize(backend),
	})
}

func summarize(s monitoring.MetricsSnapshot) MetricsSummary {
	summary := MetricsSummary{
		TotalRequests:     s.TotalRequests,
		AverageLatencyMs:  s.AvgLatencyMs,
		ActiveConnections: s.ActiveConnections,
		UptimeSeconds:     s.UptimeSeconds,
	}
	if s.TotalRequests > 0 {
		summary.ErrorRate = float64(s.TotalErrors) / float64(s.TotalRequests)
	}
	if s.Evaluations > 0 {
		summary.EvaluationErrorRate = float64(s.EvaluationErrors) / float64(s.Evaluations)
	}
	return summary
}
