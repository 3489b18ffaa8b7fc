package docstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of DocumentStore
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates a new MemoryStore instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
	}
}

// Get implements DocumentStore.Get
func (m *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := validatePath("Get", collection, id); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, exists := m.docs[Path(collection, id)]
	if !exists {
		return nil, NewStoreError("Get", Path(collection, id), ErrDocumentNotFound)
	}

	return doc.Clone(), nil
}

// Set implements DocumentStore.Set
func (m *MemoryStore) Set(ctx context.Context, collection, id string, doc Document) error {
	if err := validatePath("Set", collection, id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := doc.Clone()
	if stored == nil {
		stored = Document{}
	}
	m.docs[Path(collection, id)] = stored
	return nil
}

// Ping implements DocumentStore.Ping
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Type implements DocumentStore.Type
func (m *MemoryStore) Type() string { return string(StoreTypeMemory) }

// Close implements DocumentStore.Close
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs = make(map[string]Document)
	return nil
}

// Count returns the number of stored documents (useful for testing)
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// UnavailableStore is used when no store is configured; every call fails
type UnavailableStore struct{}

// Get implements DocumentStore.Get
func (UnavailableStore) Get(ctx context.Context, collection, id string) (Document, error) {
	return nil, NewStoreError("Get", Path(collection, id), ErrStoreUnavailable)
}

// Set implements DocumentStore.Set
func (UnavailableStore) Set(ctx context.Context, collection, id string, doc Document) error {
	return NewStoreError("Set", Path(collection, id), ErrStoreUnavailable)
}

// Ping implements DocumentStore.Ping
func (UnavailableStore) Ping(ctx context.Context) error {
	return NewStoreError("Ping", "", ErrStoreUnavailable)
}

// Type implements DocumentStore.Type
func (UnavailableStore) Type() string { return string(StoreTypeNone) }

// Close implements DocumentStore.Close
func (UnavailableStore) Close() error { return nil }
