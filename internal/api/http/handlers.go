package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/calcpad/backend/internal/api/middleware"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/numfmt"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/tape"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/service"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/session"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calcpad/backend/internal/providers/convert"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/types"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/utils"
)

// Version is reported by the root endpoint
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *service.Registry
	sessions  *session.Manager
	evaluator *expr.Evaluator
	mode      expr.AngleMode
	rates     *convert.RateBook
	metrics   *HandlerMetrics
	logger    *logging.Logger
}

// NewHandlers creates a new handler set. mode is the angle mode used when a
// request does not name one.
func NewHandlers(
	registry *service.Registry,
	sessions *session.Manager,
	evaluator *expr.Evaluator,
	mode expr.AngleMode,
	rates *convert.RateBook,
	metrics *HandlerMetrics,
	logger *logging.Logger,
) *Handlers {
	if evaluator == nil {
		evaluator = &expr.Evaluator{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		registry:  registry,
		sessions:  sessions,
		evaluator: evaluator,
		mode:      mode,
		rates:     rates,
		metrics:   metrics,
		logger:    logger.Component("http"),
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "calcpad",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"sessions":         h.sessions.Stats(),
		"default_mode":     h.mode.String(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")
	if err := utils.ValidateCategory(categoryStr, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices discovers relevant services for a query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateQuery(req.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": h.registry.Discover(req.Query, 5),
	})
}

// ExecuteService executes a service tool. Tool failures answer 200 with
// success=false; only malformed requests and unknown services are errors.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := middleware.GetRequestID(c)
	appCtx := &types.Context{SessionID: req.SessionID}
	if requestID != "" {
		appCtx.RequestID = &requestID
	}

	serviceID, _, _ := strings.Cut(req.ToolID, ".")
	timer := h.metrics.TrackServiceOperation(serviceID, req.ToolID)
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		timer.Stop("error")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if result.Success {
		timer.Stop("success")
	} else {
		timer.Stop("failure")
	}

	c.JSON(http.StatusOK, result)
}

// Evaluate evaluates one expression without a session. Evaluation failures
// answer 200 with the "Error" display and the error kind.
func (h *Handlers) Evaluate(c *gin.Context) {
	var req types.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateExpression(req.Expression); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := h.parseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	done := h.metrics.TrackEvaluation()
	value, err := h.evaluator.Evaluate(req.Expression, mode)
	if err != nil {
		kind, _ := expr.KindOf(err)
		done(string(kind))
		h.logger.Info("Evaluation failed",
			zap.String("error_kind", string(kind)),
			zap.String("mode", mode.String()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusOK, types.EvaluateResponse{
			Display:   tape.ErrorDisplay,
			ErrorKind: string(kind),
			Detail:    err.Error(),
		})
		return
	}
	done("ok")

	c.JSON(http.StatusOK, types.EvaluateResponse{
		Value:   value,
		Display: numfmt.Smart(value),
	})
}

func (h *Handlers) parseMode(s string) (expr.AngleMode, error) {
	if s == "" {
		return h.mode, nil
	}
	return expr.ParseAngleMode(s)
}

// bindOptionalJSON binds a JSON body that may be absent.
func bindOptionalJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
