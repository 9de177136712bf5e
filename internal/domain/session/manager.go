package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/expr"
	"github.com/GriffinCanCode/calcpad/backend/internal/calculator/tape"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calcpad/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calcpad/backend/internal/shared/id"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Options configures a Manager.
type Options struct {
	DefaultMode expr.AngleMode
	TTL         time.Duration
	Logger      *logging.Logger
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	ID        id.SessionID `json:"id"`
	State     tape.State   `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	LastUsed  time.Time    `json:"last_used"`
}

// PressResult is the outcome of applying keys to a session.
type PressResult struct {
	Snapshot
	Ignored   []string `json:"ignored,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

// Stats contains session manager statistics
type Stats struct {
	Active  int `json:"active"`
	Created int `json:"created"`
	Expired int `json:"expired"`
}

type session struct {
	mu        sync.Mutex
	id        id.SessionID
	state     tape.State
	createdAt time.Time
	lastUsed  time.Time
}

func (s *session) snapshot() Snapshot {
	return Snapshot{ID: s.id, State: s.state, CreatedAt: s.createdAt, LastUsed: s.lastUsed}
}

// Manager owns all live sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*session // Protected by mu
	created  int                       // Protected by mu
	expired  int                       // Protected by mu

	evaluator   *expr.Evaluator
	defaultMode expr.AngleMode
	ttl         time.Duration
	now         func() time.Time
	logger      *logging.Logger
	metrics     *monitoring.Metrics
}

// NewManager creates a session manager that evaluates with evaluator
func NewManager(evaluator *expr.Evaluator, opts Options) *Manager {
	if evaluator == nil {
		evaluator = &expr.Evaluator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		sessions:    make(map[id.SessionID]*session),
		evaluator:   evaluator,
		defaultMode: opts.DefaultMode,
		ttl:         opts.TTL,
		now:         time.Now,
		logger:      logger.Component("session"),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Create opens a session with a cleared tape. A nil mode uses the default.
func (m *Manager) Create(mode *expr.AngleMode) Snapshot {
	initial := m.defaultMode
	if mode != nil {
		initial = *mode
	}

	now := m.now()
	s := &session{
		id:        id.NewSessionID(),
		state:     tape.New(initial),
		createdAt: now,
		lastUsed:  now,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.created++
	active := len(m.sessions)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsCreated()
		m.metrics.SetSessionsActive(active)
	}
	m.logger.Info("Session created",
		zap.String("session_id", s.id.String()),
		zap.Stringer("mode", initial))

	return s.snapshot()
}

func (m *Manager) lookup(sid id.SessionID) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Get returns the current state of a session
func (m *Manager) Get(sid id.SessionID) (Snapshot, error) {
	s, err := m.lookup(sid)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Press applies keys in order. Keys the calculator ignores are reported in
// Ignored; if any key failed to evaluate, ErrorKind holds the last failure.
func (m *Manager) Press(sid id.SessionID, keys []string) (PressResult, error) {
	s, err := m.lookup(sid)
	if err != nil {
		return PressResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var res PressResult
	for _, key := range keys {
		next, handled, err := m.press(s.state, key)
		if m.metrics != nil {
			m.metrics.RecordKey(handled)
		}
		if !handled {
			res.Ignored = append(res.Ignored, key)
			continue
		}
		s.state = next
		if err != nil {
			kind, _ := expr.KindOf(err)
			res.ErrorKind = string(kind)
			m.logger.Debug("Key produced an error",
				zap.String("session_id", sid.String()),
				zap.String("key", key),
				zap.String("error_kind", res.ErrorKind),
				zap.Error(err))
		}
	}
	s.lastUsed = m.now()
	res.Snapshot = s.snapshot()
	return res, nil
}

// press applies one key, timing it when it evaluates the tape.
func (m *Manager) press(state tape.State, key string) (tape.State, bool, error) {
	if m.metrics == nil || !tape.IsEvaluate(key) {
		return tape.Press(state, key, m.evaluator)
	}

	start := time.Now()
	next, handled, err := tape.Press(state, key, m.evaluator)
	outcome := "ok"
	if kind, ok := expr.KindOf(err); ok {
		outcome = string(kind)
	}
	m.metrics.RecordEvaluation(outcome, time.Since(start))
	return next, handled, err
}

// SetMode switches the angle mode of a session
func (m *Manager) SetMode(sid id.SessionID, mode expr.AngleMode) (Snapshot, error) {
	s, err := m.lookup(sid)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = tape.SetMode(s.state, mode)
	s.lastUsed = m.now()
	return s.snapshot(), nil
}

// Delete drops a session. It reports whether the session existed.
func (m *Manager) Delete(sid id.SessionID) bool {
	m.mu.Lock()
	_, ok := m.sessions[sid]
	delete(m.sessions, sid)
	active := len(m.sessions)
	m.mu.Unlock()

	if ok {
		if m.metrics != nil {
			m.metrics.SetSessionsActive(active)
		}
		m.logger.Info("Session deleted", zap.String("session_id", sid.String()))
	}
	return ok
}

// List returns every live session, oldest first
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	all := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	out := make([]Snapshot, 0, len(all))
	for _, s := range all {
		s.mu.Lock()
		out = append(out, s.snapshot())
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were dropped. A zero TTL disables expiry.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var dropped []id.SessionID
	for sid, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, sid)
			dropped = append(dropped, sid)
		}
	}
	m.expired += len(dropped)
	active := len(m.sessions)
	m.mu.Unlock()

	if len(dropped) == 0 {
		return 0
	}
	if m.metrics != nil {
		m.metrics.AddSessionsExpired(len(dropped))
		m.metrics.SetSessionsActive(active)
	}
	for _, sid := range dropped {
		m.logger.Info("Session expired", zap.String("session_id", sid.String()))
	}
	return len(dropped)
}

// Run sweeps every interval until ctx is cancelled
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Stats returns session statistics
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{Active: len(m.sessions), Created: m.created, Expired: m.expired}
}
