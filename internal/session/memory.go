package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps values in process memory. Snapshot and LoadSnapshot
// round-trip its contents through JSON so tests can simulate a restart.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Snapshot serialises every key.
func (m *MemoryStore) Snapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return json.Marshal(m.data)
}

// LoadSnapshot builds a store from the output of Snapshot.
func LoadSnapshot(b []byte) (*MemoryStore, error) {
	m := NewMemoryStore()
	if err := json.Unmarshal(b, &m.data); err != nil {
		return nil, err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	return m, nil
}
