package dialogue

import (
	"sync"

	"github.com/google/uuid"
)

// Session pairs a dialogue state with the lock that serializes its turns.
// Answering is not reentrant for a session, so callers hold the lock for the
// whole turn.
type Session struct {
	ID    string
	State *State

	mu sync.Mutex
}

// Lock acquires the session for one turn.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager owns all sessions in the process. Conversation state lives only
// for the process lifetime.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it if unknown. An empty id gets
// a fresh UUID.
func (m *Manager) Get(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = &Session{ID: id, State: NewState()}
	m.sessions[id] = s
	return s
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
