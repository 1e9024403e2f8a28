package store

import (
	"context"
	"sync"
)

type Memory struct {
	mu   sync.Mutex
	rows map[string][]byte
}

func NewMemory() *Memory { return &Memory{rows: map[string][]byte{}} }

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[key] = append([]byte(nil), payload...)
	return nil
}

func (m *Memory) Close() error { return nil }
