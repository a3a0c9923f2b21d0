package db

import (
	"context"
	"sync"
)

type memStore struct {
	mu   sync.RWMutex
	vals map[string]string
}

func newMemStore() *memStore {
	return &memStore{vals: make(map[string]string)}
}

// NewMem returns an in-memory KV, used by tests and mem:// DSNs.
func NewMem() KV { return newMemStore() }

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memStore) Put(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, key)
	return nil
}
