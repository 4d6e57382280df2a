// Package memory implements the ability to read and write documents to memory
// using a map.
package memory

import (
	"fmt"
	"io/fs"
	"sync"
)

// Memory represents the storage implementation for reading and storing
// documents in memory. This implements the storage.Storage interface.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{
		docs: make(map[string][]byte),
	}
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Read returns a copy of the document stored under the key.
func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.docs[key]
	if !exists {
		return nil, fmt.Errorf("document %q: %w", key, fs.ErrNotExist)
	}

	cpy := make([]byte, len(data))
	copy(cpy, data)

	return cpy, nil
}

// Write replaces the document stored under the key.
func (m *Memory) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cpy := make([]byte, len(data))
	copy(cpy, data)
	m.docs[key] = cpy

	return nil
}

// Remove deletes the document stored under the key.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, key)

	return nil
}
