package persistence

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/talgya/hamlet/internal/engine"
)

// MemoryStore keeps saves in process memory.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]*engine.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]*engine.Snapshot{}}
}

func (s *MemoryStore) ListVillageNames(ctx context.Context) ([]string, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.m)), nil
}

func (s *MemoryStore) LoadVillage(ctx context.Context, name string) (*engine.Snapshot, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.m[name]
	if !ok {
		return nil, ErrNotFound
	}
	return snap.Clone(), nil
}

func (s *MemoryStore) SaveVillage(ctx context.Context, v *engine.Village, name string) error {
	_ = ctx
	snap := v.Snapshot()
	snap.Name = name
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[name] = snap
	return nil
}

func (s *MemoryStore) Close() error { return nil }
