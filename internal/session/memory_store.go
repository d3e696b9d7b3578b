package session

import (
	"context"
	"sync"

	"github.com/quantum-banking/webapp/internal/backend"
)

type memoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
	users  map[string]*backend.UserProfile
}

// NewMemoryStore builds an in-memory session store for development and tests.
func NewMemoryStore() Store {
	return &memoryStore{
		tokens: make(map[string]string),
		users:  make(map[string]*backend.UserProfile),
	}
}

func (s *memoryStore) SetToken(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[id] = token
	return nil
}

func (s *memoryStore) Token(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[id], nil
}

func (s *memoryStore) SetUser(_ context.Context, id string, user *backend.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[id] = &copied
	return nil
}

func (s *memoryStore) User(_ context.Context, id string) (*backend.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, id)
	delete(s.users, id)
	return nil
}
