// Package types provides shared data structures for the calculator backend.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool definition
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Service tool execution
//   - EvaluateRequest: One-shot expression evaluation
//   - KeysRequest: Keypad input for a session
//   - WSMessage: WebSocket communication
package types
