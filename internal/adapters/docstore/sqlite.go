package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/onskyline/science-interview/internal/database"
)

// SQLiteStore keeps documents as JSON rows in a local sqlite file
type SQLiteStore struct {
	cm *database.ConnectionManager
}

// NewSQLiteStore opens (and migrates) the sqlite database at path
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	cm := database.NewConnectionManager(database.DefaultConnectionConfig(path))
	if err := cm.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect sqlite store: %w", err)
	}
	return &SQLiteStore{cm: cm}, nil
}

// Get implements DocumentStore.Get
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := validatePath("Get", collection, id); err != nil {
		return nil, err
	}

	var data string
	query := `SELECT data FROM documents WHERE collection = ? AND id = ?`
	err := s.cm.GetDB().QueryRowContext(ctx, query, collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewStoreError("Get", Path(collection, id), ErrDocumentNotFound)
	}
	if err != nil {
		return nil, NewStoreError("Get", Path(collection, id), err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, NewStoreError("Get", Path(collection, id), fmt.Errorf("corrupt document: %w", err))
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Set implements DocumentStore.Set
func (s *SQLiteStore) Set(ctx context.Context, collection, id string, doc Document) error {
	if err := validatePath("Set", collection, id); err != nil {
		return err
	}
	if doc == nil {
		doc = Document{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return NewStoreError("Set", Path(collection, id), fmt.Errorf("failed to encode document: %w", err))
	}

	query := `
		INSERT INTO documents (collection, id, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	if _, err := s.cm.GetDB().ExecContext(ctx, query, collection, id, string(data), time.Now().UTC()); err != nil {
		return NewStoreError("Set", Path(collection, id), err)
	}
	return nil
}

// Ping implements DocumentStore.Ping
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.cm.HealthCheck(ctx)
}

// Type implements DocumentStore.Type
func (s *SQLiteStore) Type() string { return string(StoreTypeSQLite) }

// Close implements DocumentStore.Close
func (s *SQLiteStore) Close() error {
	return s.cm.Close()
}
