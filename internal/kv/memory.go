package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store used by tests and by the memory backend
// mode. Documents are held as serialized JSON so that Get/Put round-trip
// the same way the Couchbase backend does.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte

	// FailWrites makes every Put return an error. Tests use it to
	// exercise storage-failure propagation.
	FailWrites bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Get reads the document at key and unmarshals it into result.
func (m *Memory) Get(ctx context.Context, key string, result interface{}) error {
	m.mu.RLock()
	raw, ok := m.docs[key]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to parse document %s: %w", key, err)
	}
	return nil
}

// Put serializes value and stores it at key.
func (m *Memory) Put(ctx context.Context, key string, value interface{}) error {
	if m.FailWrites {
		return fmt.Errorf("failed to upsert document %s: writes disabled", key)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize document %s: %w", key, err)
	}

	m.mu.Lock()
	m.docs[key] = raw
	m.mu.Unlock()
	return nil
}

// Delete removes the document at key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[key]; !ok {
		return ErrNotFound
	}
	delete(m.docs, key)
	return nil
}

// SetRaw stores pre-serialized bytes at key without validation. Tests use
// it to simulate corrupt documents left behind by an older writer.
func (m *Memory) SetRaw(key string, raw []byte) {
	m.mu.Lock()
	m.docs[key] = append([]byte(nil), raw...)
	m.mu.Unlock()
}
