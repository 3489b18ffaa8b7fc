package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// storeContract runs the behaviour every DocumentStore must share
func storeContract(t *testing.T, store DocumentStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing document", func(t *testing.T) {
		_, err := store.Get(ctx, "config", "password")
		if !IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := store.Set(ctx, "config", "password", Document{"value": "s3cret"}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		doc, err := store.Get(ctx, "config", "password")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if value, ok := doc.String("value"); !ok || value != "s3cret" {
			t.Errorf("value = %q, %v", value, ok)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		if err := store.Set(ctx, "config", "password", Document{"value": "next"}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		doc, err := store.Get(ctx, "config", "password")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if value, _ := doc.String("value"); value != "next" {
			t.Errorf("value = %q, want next", value)
		}
	})

	t.Run("document without field", func(t *testing.T) {
		if err := store.Set(ctx, "config", "empty", Document{}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		doc, err := store.Get(ctx, "config", "empty")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if _, ok := doc.String("value"); ok {
			t.Error("expected missing field")
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		tests := []struct {
			collection string
			id         string
		}{
			{"", "password"},
			{"config", ""},
		}
		for _, tt := range tests {
			if _, err := store.Get(ctx, tt.collection, tt.id); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Get(%q, %q) error = %v, want ErrInvalidPath", tt.collection, tt.id, err)
			}
			if err := store.Set(ctx, tt.collection, tt.id, Document{}); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Set(%q, %q) error = %v, want ErrInvalidPath", tt.collection, tt.id, err)
			}
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := store.Ping(ctx); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	storeContract(t, store)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := Document{"value": "a"}
	if err := store.Set(ctx, "config", "password", original); err != nil {
		t.Fatal(err)
	}
	original["value"] = "mutated"

	doc, _ := store.Get(ctx, "config", "password")
	doc["value"] = "also mutated"

	again, _ := store.Get(ctx, "config", "password")
	if value, _ := again.String("value"); value != "a" {
		t.Errorf("stored document was mutated: %q", value)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("doc-%d", i)
			if err := store.Set(ctx, "c", id, Document{"n": i}); err != nil {
				t.Errorf("Set() error = %v", err)
			}
			if _, err := store.Get(ctx, "c", id); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if store.Count() != 20 {
		t.Errorf("Count() = %d, want 20", store.Count())
	}
}

func TestUnavailableStore(t *testing.T) {
	store := UnavailableStore{}
	ctx := context.Background()

	if _, err := store.Get(ctx, "config", "password"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Get() error = %v", err)
	}
	if IsNotFound(func() error { _, err := store.Get(ctx, "config", "password"); return err }()) {
		t.Error("unavailable must not look like not found")
	}
	if err := store.Set(ctx, "config", "password", Document{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Set() error = %v", err)
	}
	if err := store.Ping(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestDocument_String(t *testing.T) {
	doc := Document{"value": "x", "number": 42}

	if v, ok := doc.String("value"); !ok || v != "x" {
		t.Errorf("String(value) = %q, %v", v, ok)
	}
	if _, ok := doc.String("number"); ok {
		t.Error("non-string field should report ok=false")
	}
	if _, ok := doc.String("missing"); ok {
		t.Error("missing field should report ok=false")
	}
}
