package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/session"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/id"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/types"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/utils"
)

// sessionID reads and validates the :id path parameter
func sessionID(c *gin.Context) (id.SessionID, bool) {
	sid := id.SessionID(c.Param("id"))
	if !sid.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return "", false
	}
	return sid, true
}

func sessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// CreateSession opens a calculator session with a cleared tape
func (h *Handlers) CreateSession(c *gin.Context) {
	var req types.CreateSessionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mode *expr.AngleMode
	if req.Mode != "" {
		m, err := expr.ParseAngleMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mode = &m
	}

	timer := h.metrics.TrackSessionOperation("create")
	snap := h.sessions.Create(mode)
	timer.Stop("success")

	c.JSON(http.StatusCreated, snap)
}

// ListSessions lists live sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": h.sessions.List(),
		"stats":    h.sessions.Stats(),
	})
}

// GetSession returns a session's state
func (h *Handlers) GetSession(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	snap, err := h.sessions.Get(sid)
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// PressKeys applies keys to a session in order
func (h *Handlers) PressKeys(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req types.KeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateKeys(req.Keys); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := h.metrics.TrackSessionOperation("press")
	res, err := h.sessions.Press(sid, req.Keys)
	if err != nil {
		timer.Stop("error")
		sessionError(c, err)
		return
	}
	timer.Stop("success")

	c.JSON(http.StatusOK, res)
}

// SetSessionMode switches a session between degrees and radians
func (h *Handlers) SetSessionMode(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req types.ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := expr.ParseAngleMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.sessions.SetMode(sid, mode)
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// DeleteSession drops a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if !h.sessions.Delete(sid) {
		sessionError(c, session.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sid,
	})
}
