package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is a process-local RecordStore
type Memory struct {
	mu          sync.RWMutex
	collections map[Collection][]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[Collection][]json.RawMessage)}
}

func (m *Memory) Read(_ context.Context, c Collection) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.collections[c]), nil
}

func (m *Memory) Write(_ context.Context, c Collection, records []json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[c] = cloneRecords(records)
	return nil
}

func (m *Memory) Close() error { return nil }

func cloneRecords(in []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(in))
	for i, r := range in {
		out[i] = append(json.RawMessage(nil), r...)
	}
	return out
}
