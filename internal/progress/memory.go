package progress

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps encoded state per learner in memory, mirroring the
// string key-value layout of the other stores.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, learnerID string) (State, error) {
	s.mu.RLock()
	raw := make(map[string]string, len(s.values[learnerID]))
	for k, v := range s.values[learnerID] {
		raw[k] = v
	}
	s.mu.RUnlock()

	return Decode(learnerID, raw), nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, learnerID string, st State) error {
	if learnerID == "" {
		return fmt.Errorf("learner id is required")
	}
	values, err := Encode(st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values[learnerID] = values
	s.mu.Unlock()
	return nil
}

// SetRaw overwrites one stored value as-is.
func (s *MemoryStore) SetRaw(learnerID, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values[learnerID] == nil {
		s.values[learnerID] = make(map[string]string)
	}
	s.values[learnerID][key] = value
}

// Raw returns one stored value.
func (s *MemoryStore) Raw(learnerID, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[learnerID][key]
	return v, ok
}
