package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/service"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/session"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calcpad/backend/internal/providers/calculator"
	"github.com/GriffinCanCode/calcpad/backend/internal/providers/convert"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/types"
)

type testServer struct {
	router   *gin.Engine
	metrics  *monitoring.Metrics
	sessions *session.Manager
	rates    *convert.RateBook
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	evaluator := &expr.Evaluator{MaxLength: 512}
	metrics := monitoring.NewMetrics()
	rates := convert.NewRateBook(convert.DefaultRates())

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(calculator.NewProvider(evaluator, expr.Degrees)))
	require.NoError(t, registry.Register(convert.NewProvider(rates)))

	sessions := session.NewManager(evaluator, session.Options{DefaultMode: expr.Degrees}).WithMetrics(metrics)

	h := NewHandlers(registry, sessions, evaluator, expr.Degrees, rates, NewHandlerMetrics(metrics), nil)
	router := gin.New()
	h.Register(router)
	router.GET("/metrics/json", NewMetricsAggregator(metrics, sessions, registry).GetAggregatedMetrics)

	return &testServer{router: router, metrics: metrics, sessions: sessions, rates: rates}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	root := decode[map[string]interface{}](t, w)
	assert.Equal(t, "online", root["status"])
	assert.Equal(t, Version, root["version"])

	w = s.do(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "deg", health["default_mode"])
	assert.Contains(t, health, "sessions")
}

func TestEvaluate(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name        string
		req         types.EvaluateRequest
		wantDisplay string
		wantKind    string
	}{
		{"precedence", types.EvaluateRequest{Expression: "2+3×4"}, "14", ""},
		{"degrees by default", types.EvaluateRequest{Expression: "sin(90)"}, "1", ""},
		{"radians", types.EvaluateRequest{Expression: "cos(0)", Mode: "rad"}, "1", ""},
		{"empty is zero", types.EvaluateRequest{Expression: ""}, "0", ""},
		{"division by zero", types.EvaluateRequest{Expression: "5÷0"}, "Error", string(expr.KindDivisionByZero)},
		{"syntax", types.EvaluateRequest{Expression: "2+×3"}, "Error", string(expr.KindSyntax)},
		{"factorial", types.EvaluateRequest{Expression: "2.5!"}, "Error", string(expr.KindInvalidFactorial)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, "POST", "/evaluate", tt.req)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[types.EvaluateResponse](t, w)
			assert.Equal(t, tt.wantDisplay, resp.Display)
			assert.Equal(t, tt.wantKind, resp.ErrorKind)
			if tt.wantKind != "" {
				assert.NotEmpty(t, resp.Detail)
			}
		})
	}

	snap := s.metrics.Snapshot()
	assert.EqualValues(t, len(tests), snap.Evaluations)
	assert.EqualValues(t, 3, snap.EvaluationErrors)
}

func TestEvaluateRejectsBadMode(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/evaluate", types.EvaluateRequest{Expression: "1", Mode: "grad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListServices(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[struct {
		Services []types.Service `json:"services"`
	}](t, w)
	require.Len(t, all.Services, 2)
	assert.Equal(t, "calculator", all.Services[0].ID)
	assert.Equal(t, "convert", all.Services[1].ID)

	w = s.do(t, "GET", "/services?category=conversion", nil)
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decode[struct {
		Services []types.Service `json:"services"`
	}](t, w)
	require.Len(t, filtered.Services, 1)
	assert.Equal(t, "convert", filtered.Services[0].ID)

	w = s.do(t, "GET", "/services?category=Bad!", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscoverServices(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/services/discover", types.DiscoverRequest{Query: "currency conversion"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Services []types.Service `json:"services"`
	}](t, w)
	require.NotEmpty(t, resp.Services)
	assert.Equal(t, "convert", resp.Services[0].ID)

	w = s.do(t, "POST", "/services/discover", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteService(t *testing.T) {
	s := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		w := s.do(t, "POST", "/services/execute", types.ExecuteRequest{
			ToolID: "calculator.evaluate",
			Params: map[string]interface{}{"expression": "1+2"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		result := decode[types.Result](t, w)
		assert.True(t, result.Success)
		assert.Equal(t, "3", result.Data["display"])
	})

	t.Run("tool failure is not an HTTP error", func(t *testing.T) {
		w := s.do(t, "POST", "/services/execute", types.ExecuteRequest{
			ToolID: "calculator.evaluate",
			Params: map[string]interface{}{"expression": "1÷0"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		result := decode[types.Result](t, w)
		assert.False(t, result.Success)
		assert.Equal(t, "Error", result.Data["display"])
	})

	t.Run("unknown service", func(t *testing.T) {
		w := s.do(t, "POST", "/services/execute", types.ExecuteRequest{ToolID: "storage.get"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid tool id", func(t *testing.T) {
		w := s.do(t, "POST", "/services/execute", types.ExecuteRequest{ToolID: "calc evaluate"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing tool id", func(t *testing.T) {
		w := s.do(t, "POST", "/services/execute", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[session.Snapshot](t, w)
	assert.True(t, created.ID.Valid())
	assert.Equal(t, "0", created.State.Tape)
	assert.Equal(t, expr.Degrees, created.State.Mode)
	path := "/sessions/" + created.ID.String()

	w = s.do(t, "POST", path+"/keys", types.KeysRequest{Keys: []string{"1", "+", "2", "Q", "="}})
	require.Equal(t, http.StatusOK, w.Code)
	pressed := decode[session.PressResult](t, w)
	assert.Equal(t, "3", pressed.State.Tape)
	assert.True(t, pressed.State.FreshResult)
	assert.Equal(t, []string{"Q"}, pressed.Ignored)
	assert.Empty(t, pressed.ErrorKind)

	w = s.do(t, "POST", path+"/keys", types.KeysRequest{Keys: []string{"÷", "0", "="}})
	require.Equal(t, http.StatusOK, w.Code)
	failed := decode[session.PressResult](t, w)
	assert.Equal(t, "Error", failed.State.Tape)
	assert.Equal(t, string(expr.KindDivisionByZero), failed.ErrorKind)

	w = s.do(t, "PUT", path+"/mode", types.ModeRequest{Mode: "rad"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, expr.Radians, decode[session.Snapshot](t, w).State.Mode)

	w = s.do(t, "GET", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[session.Snapshot](t, w)
	assert.Equal(t, "Error", got.State.Tape)
	assert.Equal(t, expr.Radians, got.State.Mode)

	w = s.do(t, "GET", "/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct {
		Sessions []session.Snapshot `json:"sessions"`
	}](t, w).Sessions, 1)

	w = s.do(t, "DELETE", path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "DELETE", path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, "GET", path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionWithMode(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/sessions", types.CreateSessionRequest{Mode: "rad"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, expr.Radians, decode[session.Snapshot](t, w).State.Mode)

	w = s.do(t, "POST", "/sessions", types.CreateSessionRequest{Mode: "turns"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionRequestValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/sessions/not-a-session", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	created := decode[session.Snapshot](t, s.do(t, "POST", "/sessions", nil))
	path := "/sessions/" + created.ID.String()

	w = s.do(t, "POST", path+"/keys", types.KeysRequest{Keys: []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, "PUT", path+"/mode", types.ModeRequest{Mode: "grad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnits(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/convert/units", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Length     []convert.Unit `json:"length"`
		Weight     []convert.Unit `json:"weight"`
		Currencies []string       `json:"currencies"`
	}](t, w)
	assert.Equal(t, "km", resp.Length[0].Code)
	assert.Equal(t, "kg", resp.Weight[0].Code)
	assert.Equal(t, convert.Currencies, resp.Currencies)
}

func TestRates(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/convert/rates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	initial := decode[struct {
		Base  string        `json:"base"`
		Rates convert.Rates `json:"rates"`
	}](t, w)
	assert.Equal(t, "USD", initial.Base)
	assert.Equal(t, 1.0, initial.Rates["USD"])

	w = s.do(t, "PUT", "/convert/rates", map[string]interface{}{
		"rates": map[string]interface{}{"idr": "abc", "JPY": 140},
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[struct {
		Rates convert.Rates `json:"rates"`
	}](t, w)
	assert.Equal(t, 1.0, updated.Rates["IDR"])
	assert.Equal(t, 140.0, updated.Rates["JPY"])

	w = s.do(t, "PUT", "/convert/rates", map[string]interface{}{
		"rates": map[string]interface{}{"KRW": 1200, "XYZ": 3},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	krw, _ := s.rates.Get("KRW")
	assert.Equal(t, 1300.0, krw, "a rejected update changes nothing")

	w = s.do(t, "GET", "/convert/rates?format=toml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/toml", w.Header().Get("Content-Type"))
	decoded, err := convert.DecodeRates(w.Body.Bytes(), convert.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 140.0, decoded["JPY"])

	w = s.do(t, "GET", "/convert/rates?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAggregatedMetrics(t *testing.T) {
	s := newTestServer(t)

	s.do(t, "POST", "/sessions", nil)
	s.do(t, "POST", "/evaluate", types.EvaluateRequest{Expression: "1÷0"})
	s.do(t, "POST", "/evaluate", types.EvaluateRequest{Expression: "1+1"})

	w := s.do(t, "GET", "/metrics/json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[MetricsSnapshot](t, w)
	assert.Equal(t, 1, snap.Sessions.Active)
	assert.EqualValues(t, 2, snap.Backend.Evaluations)
	assert.InDelta(t, 0.5, snap.Summary.EvaluationErrorRate, 1e-9)
	assert.EqualValues(t, 2, snap.Services["total_services"])
}
