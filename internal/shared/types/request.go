package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID    string                 `json:"tool_id" binding:"required"`
	Params    map[string]interface{} `json:"params"`
	SessionID *string                `json:"session_id,omitempty"`
}

// DiscoverRequest finds services relevant to a free-text query
type DiscoverRequest struct {
	Query string `json:"query" binding:"required"`
}

// EvaluateRequest evaluates one expression without a session
type EvaluateRequest struct {
	Expression string `json:"expression"`
	Mode       string `json:"mode,omitempty"`
}

// EvaluateResponse carries the value and its display text. ErrorKind is set
// when evaluation failed, in which case Display is "Error".
type EvaluateResponse struct {
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	ErrorKind string  `json:"error_kind,omitempty"`
	Detail    string  `json:"detail,omitempty"`
}

// CreateSessionRequest opens a calculator session
type CreateSessionRequest struct {
	Mode string `json:"mode,omitempty"`
}

// KeysRequest presses keys in order on a session
type KeysRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

// ModeRequest switches a session's angle mode
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// RatesRequest edits exchange rates in units per USD. Values that are not
// positive numbers are stored as 1.
type RatesRequest struct {
	Rates map[string]interface{} `json:"rates" binding:"required"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message,omitempty"`
}
