// Package storetest provides RecordStore doubles for tests.
package storetest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/pbaille/ventures/internal/store"
)

// Mock is a testify mock of store.RecordStore
type Mock struct {
	mock.Mock
}

func (m *Mock) Read(ctx context.Context, c store.Collection) ([]json.RawMessage, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *Mock) Write(ctx context.Context, c store.Collection, records []json.RawMessage) error {
	args := m.Called(ctx, c, records)
	return args.Error(0)
}

// Recorder wraps a real store, counts writes per collection, and can fail
// writes to chosen collections.
type Recorder struct {
	store.RecordStore

	mu         sync.Mutex
	writes     map[store.Collection]int
	failWrites map[store.Collection]error
}

func NewRecorder(inner store.RecordStore) *Recorder {
	return &Recorder{
		RecordStore: inner,
		writes:      make(map[store.Collection]int),
		failWrites:  make(map[store.Collection]error),
	}
}

// FailWrites makes every later write to c return err; nil clears it
func (r *Recorder) FailWrites(c store.Collection, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failWrites, c)
		return
	}
	r.failWrites[c] = err
}

// Writes returns how many successful writes c received
func (r *Recorder) Writes(c store.Collection) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes[c]
}

func (r *Recorder) Write(ctx context.Context, c store.Collection, records []json.RawMessage) error {
	r.mu.Lock()
	err := r.failWrites[c]
	r.mu.Unlock()
	if err != nil {
		return err
	}

	if err := r.RecordStore.Write(ctx, c, records); err != nil {
		return err
	}
	r.mu.Lock()
	r.writes[c]++
	r.mu.Unlock()
	return nil
}
