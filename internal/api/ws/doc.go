// Package ws streams keypad input to a calculator session over WebSocket.
//
// A connection is bound to one session, opened with GET /sessions/:id/stream.
// Frames are JSON encoded with sonic.
//
// Message Types (Client → Server):
//   - key: Press one key, e.g. {"type":"key","key":"7"}
//   - state: Ask for the current state without pressing anything
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - state: Session state after a key or on request
//   - pong: Reply to ping
//   - error: Malformed frame, unknown type, or the session is gone
//
// Example Usage:
//
//	handler := ws.NewHandler(sessions, metrics, logger)
//	router.GET("/sessions/:id/stream", handler.HandleConnection)
package ws
