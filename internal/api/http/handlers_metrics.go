package http

import (
	"time"

	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking. A nil metrics
// collector turns every method into a no-op.
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackServiceOperation times a registry tool call
func (hm *HandlerMetrics) TrackServiceOperation(service, tool string) *monitoring.Timer {
	return monitoring.NewTimer(hm.collector(), service, tool)
}

// TrackSessionOperation times a session manager call
func (hm *HandlerMetrics) TrackSessionOperation(operation string) *monitoring.Timer {
	return monitoring.NewTimer(hm.collector(), "session_manager", operation)
}

// TrackEvaluation returns a func that records one evaluation outcome
func (hm *HandlerMetrics) TrackEvaluation() func(outcome string) {
	start := time.Now()
	return func(outcome string) {
		if m := hm.collector(); m != nil {
			m.RecordEvaluation(outcome, time.Since(start))
		}
	}
}

// RateUpdated counts one edited exchange rate
func (hm *HandlerMetrics) RateUpdated(currency string) {
	if m := hm.collector(); m != nil {
		m.RecordRateUpdate(currency)
	}
}

func (hm *HandlerMetrics) collector() *monitoring.Metrics {
	if hm == nil {
		return nil
	}
	return hm.metrics
}
