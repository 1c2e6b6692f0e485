package session

import (
	"context"
	"fmt"
	"sync"

	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/navigation"
)

// memoryStore is the default store: states live in process memory and vanish
// on restart. Values are cloned on the way in and out so callers can mutate
// their copy freely.
type memoryStore struct {
	mu     sync.RWMutex
	states map[string]*navigation.State
}

func NewMemoryStore() Store {
	return &memoryStore{states: make(map[string]*navigation.State)}
}

func (s *memoryStore) Get(_ context.Context, id string) (*navigation.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return st.Clone(), nil
}

func (s *memoryStore) Put(_ context.Context, id string, st *navigation.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[id] = st.Clone()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, id)
	return nil
}
