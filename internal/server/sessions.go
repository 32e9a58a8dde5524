package server

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/meibo/internal/directory"
)

const sweepInterval = time.Minute

// SessionManager tracks live browse sessions and expires the ones that go
// idle past the TTL. A zero TTL disables expiry.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*directory.Session
	engine   *directory.Engine
	ttl      time.Duration
	logger   *zap.Logger

	started  bool
	done     chan struct{}
	stopOnce sync.Once
}

// NewSessionManager creates a manager whose new sessions query engine.
func NewSessionManager(engine *directory.Engine, ttl time.Duration, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		sessions: make(map[string]*directory.Session),
		engine:   engine,
		ttl:      ttl,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Create registers and returns a new session.
func (m *SessionManager) Create() *directory.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := directory.NewSession(m.engine)
	m.sessions[session.ID()] = session
	return session
}

// Get returns the session with the given id.
func (m *SessionManager) Get(id string) (*directory.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Delete removes the session, reporting whether it existed.
func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SwapEngine points the manager and every live session at a new snapshot.
func (m *SessionManager) SwapEngine(engine *directory.Engine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine = engine
	for _, session := range m.sessions {
		session.SetEngine(engine)
	}
}

// Sweep drops sessions idle past the TTL and returns how many it removed.
func (m *SessionManager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, session := range m.sessions {
		if session.LastTouched().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper launches the background expiry loop. It is a no-op when the
// TTL is zero or the sweeper already runs.
func (m *SessionManager) StartSweeper() {
	m.mu.Lock()
	if m.started || m.ttl <= 0 {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-m.done:
				return
			case <-ticker.C:
				if removed := m.Sweep(); removed > 0 {
					m.logger.Debug("expired idle sessions", zap.Int("count", removed))
				}
			}
		}
	}()
}

// Stop halts the sweeper. Sessions themselves stay usable.
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}
