// Package docstore reads and writes small JSON documents addressed by collection and id.
package docstore

import (
	"context"
)

// Document is the field map of a stored document
type Document map[string]any

// String returns a field as a string. Non-string values report ok=false.
func (d Document) String(field string) (string, bool) {
	value, exists := d[field]
	if !exists {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Clone returns a shallow copy of the document
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// DocumentStore provides an abstraction over document databases.
// This interface supports both Firestore and local implementations.
type DocumentStore interface {
	// Get reads the document at collection/id.
	// A missing document yields an error for which IsNotFound is true.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Set creates or replaces the document at collection/id
	Set(ctx context.Context, collection, id string, doc Document) error

	// Ping checks that the backing service is reachable
	Ping(ctx context.Context) error

	// Type returns the store identifier used in logs and spans
	Type() string

	// Close releases any resources held by the store
	Close() error
}

// Path joins a collection and document id the way Firestore does
func Path(collection, id string) string {
	return collection + "/" + id
}
