package memory

import (
	"sync"
)

// Binding - к какой комнате привязано соединение
type Binding struct {
	RoomID string
	Name   string
}

// SessionRepository - справочник соединений: connID -> комната.
// Соединение привязано не больше чем к одной комнате.
type SessionRepository interface {
	Bind(connID string, binding Binding)
	Get(connID string) (Binding, bool)
	Unbind(connID string)
	Count() int
}

type sessionRepository struct {
	bindings map[string]Binding
	mu       sync.RWMutex
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		bindings: make(map[string]Binding),
	}
}

// Bind перезаписывает прежнюю привязку
func (s *sessionRepository) Bind(connID string, binding Binding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bindings[connID] = binding
}

func (s *sessionRepository) Get(connID string) (Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bindings[connID]
	return b, ok
}

func (s *sessionRepository) Unbind(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bindings, connID)
}

func (s *sessionRepository) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bindings)
}
