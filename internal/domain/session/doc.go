// Package session keeps live calculator sessions in memory.
//
// Each session owns exactly one tape.State. Operations on a session run one
// at a time under the session's lock, so a keypad WebSocket and HTTP calls
// against the same session never interleave mid-key. Sessions are never
// persisted; a janitor started with Run drops those idle for longer than
// the TTL.
//
// Example Usage:
//
//	mgr := session.NewManager(evaluator, session.Options{TTL: 30 * time.Minute})
//	go mgr.Run(ctx, time.Minute)
//	snap := mgr.Create(nil)
//	res, err := mgr.Press(snap.ID, []string{"1", "+", "2", "="})
package session
