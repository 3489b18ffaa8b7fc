package docstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/onskyline/science-interview/internal/config"
)

// StoreType represents the type of store implementation
type StoreType string

const (
	StoreTypeFirestore StoreType = "firestore"
	StoreTypeSQLite    StoreType = "sqlite"
	StoreTypeMemory    StoreType = "memory"
	StoreTypeNone      StoreType = "none"
)

// Factory creates DocumentStore instances based on configuration
type Factory struct {
	traced bool
}

// NewFactory creates a new store factory; traced wraps stores in a TracedStore
func NewFactory(traced bool) *Factory {
	return &Factory{traced: traced}
}

// Create creates a DocumentStore instance based on the provided configuration
func (f *Factory) Create(ctx context.Context, cfg config.StoreConfig) (DocumentStore, error) {
	storeType := StoreType(strings.ToLower(cfg.Type))

	var store DocumentStore
	var err error

	switch storeType {
	case StoreTypeFirestore:
		store, err = NewFirestoreStore(ctx, cfg.CredentialsJSON, cfg.ProjectID)
	case StoreTypeSQLite:
		store, err = NewSQLiteStore(ctx, cfg.SQLitePath)
	case StoreTypeMemory:
		store = NewMemoryStore()
	case StoreTypeNone, "":
		return UnavailableStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s store: %w", storeType, err)
	}

	if f.traced {
		store = NewTracedStore(store)
	}

	return store, nil
}

// CreateFromConfig is a convenience function to create a traced store from config
func CreateFromConfig(ctx context.Context, cfg config.StoreConfig) (DocumentStore, error) {
	return NewFactory(true).Create(ctx, cfg)
}
