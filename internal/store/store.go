package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Collection names one ordered sequence of records
type Collection string

const (
	PublicStartupIdeas        Collection = "publicStartupIdeas"
	InvestorWatchlist         Collection = "investorWatchlist"
	InvestmentAcknowledgments Collection = "investmentAcknowledgments"
	UserNotifications         Collection = "userNotifications"
	CurrentUser               Collection = "currentUser"
)

// RecordStore persists named collections of JSON records.
//
// Read on a missing collection returns an empty slice and no error.
// Write replaces the whole collection: two writers racing on the same
// collection lose the earlier write. Callers that read-modify-write accept
// that bound; there is no compare-and-swap.
type RecordStore interface {
	Read(ctx context.Context, c Collection) ([]json.RawMessage, error)
	Write(ctx context.Context, c Collection, records []json.RawMessage) error
}

// Load reads a collection and decodes every record into T
func Load[T any](ctx context.Context, s RecordStore, c Collection) ([]T, error) {
	raw, err := s.Read(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}

	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", c, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Save encodes records and replaces the collection with them
func Save[T any](ctx context.Context, s RecordStore, c Collection, records []T) error {
	raw := make([]json.RawMessage, 0, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode %s[%d]: %w", c, i, err)
		}
		raw = append(raw, b)
	}
	if err := s.Write(ctx, c, raw); err != nil {
		return fmt.Errorf("write %s: %w", c, err)
	}
	return nil
}

// Backend selects a RecordStore implementation
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Options configures Open
type Options struct {
	Backend     Backend
	Path        string
	RedisAddr   string
	RedisPrefix string
}

// Handle is a RecordStore that owns resources
type Handle interface {
	RecordStore
	Close() error
}

// Open builds the configured backend
func Open(ctx context.Context, opts Options) (Handle, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		dir := filepath.Dir(opts.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		return New(opts.Path)
	case BackendRedis:
		return NewRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
