package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/tape"
	"github.com/GriffinCanCode/calcpad/backend/internal/domain/session"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/id"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/types"
)

const (
	maxFrameSize = 4096
	writeTimeout = 10 * time.Second
)

// StateMessage reports a session's state to the client
type StateMessage struct {
	Type      string       `json:"type"`
	SessionID id.SessionID `json:"session_id"`
	State     tape.State   `json:"state"`
	Key       string       `json:"key,omitempty"`
	Ignored   bool         `json:"ignored,omitempty"`
	ErrorKind string       `json:"error_kind,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// Handler manages WebSocket connections
type Handler struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger.Component("ws"),
		upgrader: websocket.Upgrader{
			// Any origin may connect
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and serves keys until the client
// disconnects
func (h *Handler) HandleConnection(c *gin.Context) {
	sid := id.SessionID(c.Param("id"))
	if !sid.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	snap, err := h.sessions.Get(sid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	h.logger.Debug("WebSocket connected", zap.String("session_id", sid.String()))

	if err := h.sendState(conn, snap, "", false, ""); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.record("in", "invalid")
			if h.sendError(conn, "malformed message") != nil {
				return
			}
			continue
		}
		h.record("in", msg.Type)

		if err := h.dispatch(conn, sid, msg); err != nil {
			return
		}
	}
}

// dispatch answers one client frame. A non-nil error ends the connection.
func (h *Handler) dispatch(conn *websocket.Conn, sid id.SessionID, msg types.WSMessage) error {
	switch msg.Type {
	case "key":
		if msg.Key == "" {
			return h.sendError(conn, "key is required")
		}
		res, err := h.sessions.Press(sid, []string{msg.Key})
		if err != nil {
			return h.sessionGone(conn, err)
		}
		return h.sendState(conn, res.Snapshot, msg.Key, len(res.Ignored) > 0, res.ErrorKind)
	case "state":
		snap, err := h.sessions.Get(sid)
		if err != nil {
			return h.sessionGone(conn, err)
		}
		return h.sendState(conn, snap, "", false, "")
	case "ping":
		return h.send(conn, "pong", map[string]interface{}{
			"type":      "pong",
			"timestamp": time.Now().Unix(),
		})
	default:
		return h.sendError(conn, "unknown message type")
	}
}

// sessionGone tells the client its session expired and closes the stream.
func (h *Handler) sessionGone(conn *websocket.Conn, err error) error {
	if !errors.Is(err, session.ErrNotFound) {
		return err
	}
	if sendErr := h.sendError(conn, err.Error()); sendErr != nil {
		return sendErr
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
		time.Now().Add(writeTimeout))
	return err
}

func (h *Handler) sendState(conn *websocket.Conn, snap session.Snapshot, key string, ignored bool, errorKind string) error {
	return h.send(conn, "state", StateMessage{
		Type:      "state",
		SessionID: snap.ID,
		State:     snap.State,
		Key:       key,
		Ignored:   ignored,
		ErrorKind: errorKind,
		Timestamp: time.Now().Unix(),
	})
}

func (h *Handler) send(conn *websocket.Conn, msgType string, data interface{}) error {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	h.record("out", msgType)
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) error {
	return h.send(conn, "error", map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}

var clientTypes = map[string]bool{"key": true, "state": true, "ping": true}

func (h *Handler) record(direction, msgType string) {
	if direction == "in" && msgType != "invalid" && !clientTypes[msgType] {
		msgType = "unknown"
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
