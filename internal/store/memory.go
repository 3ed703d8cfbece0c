package store

import (
	"maps"
	"slices"
	"sync"
)

// Memory is an in-process [Store] backed by a map.
//
// The mutex keeps the map safe for concurrent handlers; it does not make multi-key updates atomic.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty [Memory] store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// List returns every stored key in sorted order.
func (m *Memory) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.values)), nil
}
