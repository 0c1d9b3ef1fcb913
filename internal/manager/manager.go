package manager

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wordgrid/internal/suggest"
)

// DefaultSessionID names the session used by requests without a session id.
const DefaultSessionID = "default"

type Manager struct {
	mu            sync.RWMutex
	sessions      map[string]*suggest.Session
	closed        bool
	gen           *suggest.Generator
	backend       string
	maxSessions   int
	historyWindow int
	log           zerolog.Logger
	pub           suggest.EventPublisher
	startTime     time.Time

	// admission
	admitCh chan struct{}
	maxWait time.Duration

	// eviction
	idleTTL     time.Duration
	evictions   atomic.Uint64
	stopJanitor context.CancelFunc
	janitorDone chan struct{}
}

// New constructs a Manager around gen with package defaults.
func New(gen *suggest.Generator) *Manager {
	return NewWithConfig(ManagerConfig{Generator: gen})
}

// Ready reports whether a predictor backend is configured. Without one every
// request is still served from the fallback vocabulary.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.closed && m.gen.HasPredictor()
}

// WordCount returns the candidate set size.
func (m *Manager) WordCount() int { return m.gen.WordCount() }

// SetEventPublisher routes session and manager events to p for sessions
// created afterwards.
func (m *Manager) SetEventPublisher(p suggest.EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.mu.Lock()
	m.pub = p
	m.mu.Unlock()
}

// Session returns the session for id. An empty id selects the default
// session, created on first use.
func (m *Manager) Session(id string) (*suggest.Session, error) {
	if id == "" {
		id = DefaultSessionID
	}
	m.mu.RLock()
	s, ok := m.sessions[id]
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, suggest.ErrSessionClosed
	}
	if ok {
		return s, nil
	}
	if id != DefaultSessionID {
		return nil, ErrSessionNotFound(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, suggest.ErrSessionClosed
	}
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return m.newSessionLocked(id), nil
}

// Create starts a new session and returns its id.
func (m *Manager) Create() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", suggest.ErrSessionClosed
	}
	if m.maxSessions > 0 && m.explicitSessionsLocked() >= m.maxSessions {
		return "", ErrTooBusy("session limit reached")
	}
	id := uuid.NewString()
	m.newSessionLocked(id)
	return id, nil
}

// Delete closes and forgets the session. Deleting the default session resets
// it; the next request recreates it empty.
func (m *Manager) Delete(id string) error {
	if id == "" {
		id = DefaultSessionID
	}
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		sessionsGauge.Set(float64(len(m.sessions)))
	}
	pub := m.pub
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound(id)
	}
	err := s.Close()
	m.log.Info().Str("session", id).Msg("session deleted")
	pub.Publish(suggest.Event{Name: "session_deleted", SessionID: id})
	return err
}

// Close closes every session and stops the janitor. Close is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*suggest.Session)
	stop, done := m.stopJanitor, m.janitorDone
	m.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	for _, s := range sessions {
		_ = s.Close()
	}
	sessionsGauge.Set(0)
	return nil
}

func (m *Manager) newSessionLocked(id string) *suggest.Session {
	s := suggest.NewSession(id, m.gen,
		suggest.WithLogger(m.log),
		suggest.WithEventPublisher(m.pub),
		suggest.WithHistoryWindow(m.historyWindow),
	)
	m.sessions[id] = s
	sessionsGauge.Set(float64(len(m.sessions)))
	m.log.Debug().Str("session", id).Msg("session created")
	m.pub.Publish(suggest.Event{Name: "session_created", SessionID: id})
	return s
}

func (m *Manager) explicitSessionsLocked() int {
	n := len(m.sessions)
	if _, ok := m.sessions[DefaultSessionID]; ok {
		n--
	}
	return n
}
