package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store keeps each collection as one JSON array row in SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database only lives as long as its single connection.
	db.SetMaxOpenConns(1)

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Read returns the records of a collection, empty when it was never written
func (s *Store) Read(ctx context.Context, c Collection) ([]json.RawMessage, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT records FROM collections WHERE name = ?",
		string(c),
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

// Write replaces the collection and bumps its version
func (s *Store) Write(ctx context.Context, c Collection, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, records, version, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			records = excluded.records,
			version = collections.version + 1,
			updated_at = excluded.updated_at
	`, string(c), string(payload), s.now().UTC())
	if err != nil {
		return fmt.Errorf("put collection: %w", err)
	}
	return nil
}

// Version returns how many times a collection has been written, 0 if never.
// Diagnostics only; writes do not check it.
func (s *Store) Version(ctx context.Context, c Collection) (int64, error) {
	var version int64
	err := s.db.QueryRowContext(ctx,
		"SELECT version FROM collections WHERE name = ?",
		string(c),
	).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// CollectionInfo describes one stored collection
type CollectionInfo struct {
	Name      Collection `json:"name"`
	Records   int        `json:"records"`
	Version   int64      `json:"version"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListCollections returns every stored collection ordered by name
func (s *Store) ListCollections(ctx context.Context) ([]CollectionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, json_array_length(records), version, updated_at FROM collections ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var infos []CollectionInfo
	for rows.Next() {
		var ci CollectionInfo
		if err := rows.Scan(&ci.Name, &ci.Records, &ci.Version, &ci.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		infos = append(infos, ci)
	}

	return infos, rows.Err()
}
