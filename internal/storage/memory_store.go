package storage

import "sync"

// memoryStore keeps messages for the lifetime of the process.
type memoryStore struct {
	mu       sync.RWMutex
	messages []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) Append(text string) error {
	m.mu.Lock()
	m.messages = append(m.messages, text)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	m.messages = nil
	m.mu.Unlock()
	return nil
}
