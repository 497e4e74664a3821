// Package kv is the persistence boundary: a blob store addressed by
// string keys. The grocery list lives under a single key.
package kv

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// Store reads and overwrites whole values. Implementations return
// ErrNotFound (possibly wrapped) for a missing key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Memory is an in-process Store. Values are copied in and out.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
