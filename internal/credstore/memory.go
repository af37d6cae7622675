package credstore

import (
	"context"
	"sync"

	"issuemap/internal/model"
	appErr "issuemap/internal/pkg/errors"
)

// MemoryStore holds rows in process memory. It backs the "memory" config
// type and doubles as the store used by service and handler tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*model.UserRecord
}

func init() {
	Register("memory", func(args interface{}) (Store, error) {
		return NewMemoryStore(), nil
	})
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[string]*model.UserRecord{}}
}

func (s *MemoryStore) Seed(records ...model.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		clone := record
		s.users[record.Username] = &clone
	}
}

func (s *MemoryStore) Get(ctx context.Context, username string) (*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemoryStore) SetFirstLogin(ctx context.Context, username, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return appErr.ErrNotFound
	}
	user.FirstLogin = value
	return nil
}

func (s *MemoryStore) SetFeedback(ctx context.Context, username, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return appErr.ErrNotFound
	}
	user.FeedbackResult = text
	return nil
}
