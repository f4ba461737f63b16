package kv

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded map adapter, used as a lightweight backend
// and by tests that need to inject persistence failures.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	saveErr  error
	failOnce bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := append([]byte(nil), value...)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		err := s.saveErr
		if s.failOnce {
			s.saveErr = nil
			s.failOnce = false
		}
		return err
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// FailNextSave makes the next Save call return err, then recover.
func (s *MemoryStore) FailNextSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
	s.failOnce = true
}

// FailSaves makes every Save call return err until reset with FailSaves(nil).
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
	s.failOnce = false
}
