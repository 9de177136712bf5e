package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolated(t *testing.T) {
	// two collectors in one process must not collide
	a := NewMetrics()
	b := NewMetrics()

	a.RecordEvaluation("ok", time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Evaluations.WithLabelValues("ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Evaluations.WithLabelValues("ok")))
}

func TestRecordEvaluation(t *testing.T) {
	m := NewMetrics()
	m.RecordEvaluation("ok", time.Microsecond)
	m.RecordEvaluation("division_by_zero", time.Microsecond)
	m.RecordEvaluation("division_by_zero", time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("division_by_zero")))
	snap := m.Snapshot()
	assert.EqualValues(t, 3, snap.Evaluations)
	assert.EqualValues(t, 2, snap.EvaluationErrors)
}

func TestSessionsAndConnections(t *testing.T) {
	m := NewMetrics()
	m.IncSessionsCreated()
	m.SetSessionsActive(3)
	m.AddSessionsExpired(2)
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsExpired))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSConnections))
	snap := m.Snapshot()
	assert.EqualValues(t, 3, snap.ActiveSessions)
	assert.EqualValues(t, 1, snap.ActiveConnections)
}

func TestTimer(t *testing.T) {
	m := NewMetrics()
	NewTimer(m, "convert", "convert.length").Stop("success")
	NewTimer(m, "convert", "convert.currency").Stop("failure")
	NewTimer(nil, "convert", "convert.length").Stop("success")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceCalls.WithLabelValues("convert", "convert.length", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues("convert", "convert.currency")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues("convert", "convert.length")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/sessions/:id", func(c *gin.Context) { c.String(http.StatusNotFound, "nope") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/sessions/:id", "404")))
	assert.EqualValues(t, 2, m.Snapshot().TotalErrors)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "calcpad_http_requests_total"))
	assert.True(t, strings.Contains(body, "calcpad_uptime_seconds"))
}
