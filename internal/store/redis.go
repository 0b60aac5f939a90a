package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis keeps each collection as a JSON array under "<prefix>:<collection>"
type Redis struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewRedis connects and pings the server
func NewRedis(ctx context.Context, addr, prefix string) (*Redis, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisWithClient(rdb, prefix), nil
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(rdb goredis.UniversalClient, prefix string) *Redis {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "ventures"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

// Key returns the redis key holding a collection
func (r *Redis) Key(c Collection) string {
	return r.prefix + ":" + string(c)
}

// Read returns the records of a collection, empty on a missing key
func (r *Redis) Read(ctx context.Context, c Collection) ([]json.RawMessage, error) {
	payload, err := r.rdb.Get(ctx, r.Key(c)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

// Write replaces the collection value
func (r *Redis) Write(ctx context.Context, c Collection, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := r.rdb.Set(ctx, r.Key(c), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (r *Redis) Close() error {
	return r.rdb.Close()
}
