package blob

import (
	"sort"
	"strings"
	"sync"
)

type memEntry struct {
	info Info
	data []byte
}

// MemStore keeps blobs in memory.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]memEntry)}
}

func (m *MemStore) Put(key, contentType string, data []byte) (Info, error) {
	info := newInfo(key, contentType, data)
	stored := make([]byte, len(data))
	copy(stored, data)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{info: info, data: stored}
	return info, nil
}

func (m *MemStore) Stat(key string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	if !ok {
		return Info{}, ErrNotFound
	}
	return entry.info, nil
}

func (m *MemStore) Open(key string) (Blob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	if !ok {
		return Blob{}, ErrNotFound
	}
	// stored data is never mutated, so readers can share it
	return newBlob(entry.info, entry.data), nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		return ErrNotFound
	}
	delete(m.entries, key)
	return nil
}

func (m *MemStore) Keys(prefix string, cb func(string)) error {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	for _, key := range keys {
		cb(key)
	}
	return nil
}
