package store

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/callpoint/service/dao"
	"github.com/viant/callpoint/service/dao/criteria"
)

// MemoryStore is a generic in-memory implementation of dao.Service keyed by
// string. The key is obtained from the supplied keySelector function.
type MemoryStore[T any] struct {
	mu          sync.RWMutex
	records     map[string]*T
	keySelector func(*T) string
}

var _ dao.Service[string, struct{}] = (*MemoryStore[struct{}])(nil)

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore[T any](keySelector func(*T) string) *MemoryStore[T] {
	return &MemoryStore[T]{
		records:     make(map[string]*T),
		keySelector: keySelector,
	}
}

// Save stores or overwrites a record.
func (s *MemoryStore[T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	if key == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
	return nil
}

// Load returns a record by key.
func (s *MemoryStore[T]) Load(_ context.Context, key string) (*T, error) {
	if key == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record.
func (s *MemoryStore[T]) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// List returns records matching Prefix parameters ordered by key.
func (s *MemoryStore[T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for key := range s.records {
		if criteria.FilterByPrefix(key, parameters) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	out := make([]*T, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.records[key])
	}
	return out, nil
}
