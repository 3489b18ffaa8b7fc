package docstore

import (
	"context"

	"github.com/onskyline/science-interview/internal/observability"
)

// TracedStore wraps a DocumentStore and records a span per call
type TracedStore struct {
	next DocumentStore
}

// NewTracedStore creates a new TracedStore
func NewTracedStore(next DocumentStore) *TracedStore {
	return &TracedStore{next: next}
}

// Get implements DocumentStore.Get
func (t *TracedStore) Get(ctx context.Context, collection, id string) (Document, error) {
	ctx, span := observability.StartStoreSpan(ctx, t.next.Type(), "get", Path(collection, id))
	defer span.End()

	doc, err := t.next.Get(ctx, collection, id)
	if !IsNotFound(err) {
		observability.RecordError(span, err)
	}
	return doc, err
}

// Set implements DocumentStore.Set
func (t *TracedStore) Set(ctx context.Context, collection, id string, doc Document) error {
	ctx, span := observability.StartStoreSpan(ctx, t.next.Type(), "set", Path(collection, id))
	defer span.End()

	err := t.next.Set(ctx, collection, id, doc)
	observability.RecordError(span, err)
	return err
}

// Ping implements DocumentStore.Ping
func (t *TracedStore) Ping(ctx context.Context) error {
	ctx, span := observability.StartStoreSpan(ctx, t.next.Type(), "ping", "")
	defer span.End()

	err := t.next.Ping(ctx)
	observability.RecordError(span, err)
	return err
}

// Type implements DocumentStore.Type
func (t *TracedStore) Type() string { return t.next.Type() }

// Close implements DocumentStore.Close
func (t *TracedStore) Close() error { return t.next.Close() }

// Unwrap returns the wrapped store
func (t *TracedStore) Unwrap() DocumentStore { return t.next }
