package asset

import (
	"sync"
)

// MemoryStore is an in-memory asset store for tests and tooling.
// Contents are lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore creates a new empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Put stores an asset, overwriting any previous contents.
func (m *MemoryStore) Put(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining the caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[name] = stored
	return nil
}

// Read implements Store.
func (m *MemoryStore) Read(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	data, ok := m.data[name]
	if !ok {
		return nil, ErrNotFound
	}

	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Delete removes an asset. Returns nil if the asset doesn't exist.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, name)
	return nil
}

// Len returns the number of stored assets. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}
