package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/resumeforge/resumeforge/internal/agent"
	"github.com/resumeforge/resumeforge/internal/apperr"
)

// Manager is a registry of live editing sessions. It only guards the map;
// each session serializes its own requests.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	orch     *agent.Orchestrator
}

// NewManager creates an empty registry backed by the given orchestrator.
func NewManager(orch *agent.Orchestrator) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		orch:     orch,
	}
}

// Create starts a new session seeded with the given document. An empty id is
// replaced with a generated one.
func (m *Manager) Create(id, seed string) (*Session, error) {
	if id == "" {
		id = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		return nil, apperr.ErrAlreadyExists
	}
	s := New(id, seed, m.orch)
	m.sessions[id] = s
	return s, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return s, nil
}

// Delete ends a session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
